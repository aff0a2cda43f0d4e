package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCarouselSettingsPrecedence(t *testing.T) {
	tests := []struct {
		name string
		data CarouselData
		want ResolvedCarouselSettings
	}{
		{
			name: "defaults",
			want: ResolvedCarouselSettings{AutoPlay: false, Interval: 5000, ShowDots: true, ShowArrows: true, Loop: true},
		},
		{
			name: "legacy props",
			data: CarouselData{AutoPlay: boolPtr(true), Interval: intPtr(3000)},
			want: ResolvedCarouselSettings{AutoPlay: true, Interval: 3000, ShowDots: true, ShowArrows: true, Loop: true},
		},
		{
			name: "settings win",
			data: CarouselData{
				AutoPlay: boolPtr(true),
				Interval: intPtr(3000),
				Settings: &CarouselSettings{AutoPlay: boolPtr(false), Interval: intPtr(7000), Loop: boolPtr(false)},
			},
			want: ResolvedCarouselSettings{AutoPlay: false, Interval: 7000, ShowDots: true, ShowArrows: true, Loop: false},
		},
		{
			name: "interval floor",
			data: CarouselData{Settings: &CarouselSettings{Interval: intPtr(10)}},
			want: ResolvedCarouselSettings{Interval: 1000, ShowDots: true, ShowArrows: true, Loop: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.data.ResolveSettings())
		})
	}
}

func TestTestimonialSettings(t *testing.T) {
	assert.Equal(t, ResolvedTestimonialSettings{ShowRating: true, ShowAvatar: true}, TestimonialData{}.ResolveSettings())
	assert.False(t, TestimonialData{ShowRating: boolPtr(false)}.ResolveSettings().ShowRating)
	assert.True(t, TestimonialData{
		ShowRating: boolPtr(false),
		Settings:   &TestimonialSettings{ShowRating: boolPtr(true)},
	}.ResolveSettings().ShowRating)
}

func TestGridCarouselSettingsClamp(t *testing.T) {
	assert.Equal(t, 4, GridCarouselData{}.ResolveSettings().ItemsPerView)
	assert.Equal(t, 4, GridCarouselData{ItemsPerView: intPtr(0)}.ResolveSettings().ItemsPerView)
	assert.Equal(t, 6, GridCarouselData{Settings: &GridCarouselSettings{ItemsPerView: intPtr(9)}}.ResolveSettings().ItemsPerView)
	assert.Equal(t, 3, GridCarouselData{ItemsPerView: intPtr(3)}.ResolveSettings().ItemsPerView)
}

func TestMigrateLegacyLeavesInputUntouched(t *testing.T) {
	in := CarouselData{AutoPlay: boolPtr(true)}
	out := migrateLegacy(in).(CarouselData)
	assert.NotNil(t, in.AutoPlay)
	assert.Nil(t, in.Settings)
	assert.Nil(t, out.AutoPlay)
	assert.True(t, *out.Settings.AutoPlay)
	assert.Equal(t, in.ResolveSettings(), out.ResolveSettings())
}

func TestHintNormalization(t *testing.T) {
	assert.Equal(t, ThemeDefault, Theme("neon").Normalize())
	assert.Equal(t, ThemeCompact, Theme(" Compact ").Normalize())
	assert.Equal(t, VariantPrimary, Variant("").Normalize())
	assert.Equal(t, VariantDanger, Variant("DANGER").Normalize())
	assert.Equal(t, SizeMedium, Size("xl").Normalize())
	assert.Equal(t, SizeSmall, Size("sm").Normalize())
}
