package widgets

func boolPtr(v bool) *bool { return &v }

// DefaultSeedPages returns the starter pages created by SeedPages.
func DefaultSeedPages() []SavePageRequest {
	overview := WidgetConfig{
		Type: TypeGrid,
		Data: GridData{Widgets: []WidgetConfig{
			{Type: TypeHeader, Data: HeaderData{
				Identity: Identity{ID: "overview-header"},
				Eyebrow:  "Overview",
				Title:    "Store performance",
				Subtitle: "Figures for the current week",
				Actions:  []Link{{Label: "View reports", Href: "/reports"}},
			}},
			{Type: TypeMetric, Variant: VariantSuccess, Data: MetricData{
				Identity: Identity{ID: "revenue"},
				Label:    "Revenue",
				Value:    "48,210",
				Prefix:   "$",
				Trend:    &Trend{Direction: "up", Value: "12%"},
			}},
			{Type: TypeMetric, Data: MetricData{
				Identity: Identity{ID: "orders"},
				Label:    "Orders",
				Value:    "1,284",
				Trend:    &Trend{Direction: "neutral", Value: "0%"},
			}},
			{Type: TypeChart, Size: SizeLarge, Data: ChartData{
				Identity:  Identity{ID: "weekly-sales"},
				Title:     "Weekly sales",
				ChartType: "line",
				XAxis:     []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
				Series: []ChartSeries{
					{Name: "Online", Data: []float64{120, 132, 101, 134, 90, 230, 210}},
					{Name: "Retail", Data: []float64{220, 182, 191, 234, 290, 330, 310}},
				},
			}},
			{Type: TypeList, Data: ListData{
				Identity: Identity{ID: "recent-orders"},
				Title:    "Recent orders",
				Items: []ListItem{
					{ID: "A-1042", Title: "Order A-1042", Subtitle: "Jane Cooper", Meta: &ListItemMeta{Status: "shipped"}},
					{ID: "A-1043", Title: "Order A-1043", Subtitle: "Wade Warren", Meta: &ListItemMeta{Status: "pending"}},
				},
			}},
		}},
		Grid: &GridConfig{Mobile: 1, Tablet: 2, Desktop: 3, Spacing: SpacingMedium},
	}
	storefront := WidgetConfig{
		Type:  TypeProduct,
		Theme: ThemeModern,
		Items: []Payload{
			ProductData{Identity: Identity{ID: "sku-1"}, Name: "Canvas tote", Price: "24.00", Currency: "USD", InStock: boolPtr(true)},
			ProductData{Identity: Identity{ID: "sku-2"}, Name: "Linen shirt", Price: "58.00", Currency: "USD", Badge: "New"},
			ProductData{Identity: Identity{ID: "sku-3"}, Name: "Wool scarf", Price: "35.00", Currency: "EUR", InStock: boolPtr(false)},
		},
	}
	return []SavePageRequest{
		{ID: "overview", Slug: "overview", Title: "Overview", Config: &overview},
		{ID: "storefront", Slug: "storefront", Title: "Storefront", Config: &storefront},
	}
}
