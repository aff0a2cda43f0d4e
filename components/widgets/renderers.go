package widgets

// builtinDescriptors is the dispatch table for every built-in widget type.
// Component names are fixed; they are part of the rendered contract.
func builtinDescriptors() []Descriptor {
	chart := NewChartRenderer()
	return []Descriptor{
		{
			Type: TypeMetric, Component: "MetricWidget", Block: "metric",
			Render:     renderMetric,
			NewPayload: func() Payload { return &MetricData{} },
			Schema: objectSchema([]string{"value", "label"}, map[string]any{
				"value":       scalarSchema(),
				"label":       stringSchema(),
				"description": stringSchema(),
				"icon":        stringSchema(),
				"prefix":      stringSchema(),
				"suffix":      stringSchema(),
				"trend": objectSchema([]string{"direction"}, map[string]any{
					"direction": enumSchema("up", "down", "neutral", "increase", "decrease", "positive", "negative"),
					"value":     stringSchema(),
				}),
			}),
		},
		{
			Type: TypeInfo, Component: "InfoWidget", Block: "info",
			Render:     renderInfo,
			NewPayload: func() Payload { return &InfoData{} },
			Schema: objectSchema([]string{"title"}, map[string]any{
				"title":       stringSchema(),
				"description": stringSchema(),
				"icon":        stringSchema(),
				"items": arraySchema(objectSchema([]string{"label"}, map[string]any{
					"label": stringSchema(),
					"value": scalarSchema(),
				})),
				"link": linkSchema(),
			}),
		},
		{
			Type: TypeProduct, Component: "ProductWidget", Block: "product",
			Render:     renderProduct,
			NewPayload: func() Payload { return &ProductData{} },
			Schema: objectSchema([]string{"name"}, map[string]any{
				"name":          stringSchema(),
				"price":         scalarSchema(),
				"originalPrice": scalarSchema(),
				"currency":      stringSchema(),
				"image":         imageSchema(),
				"rating":        map[string]any{"type": "number", "minimum": 0, "maximum": 5},
				"reviews":       map[string]any{"type": "integer", "minimum": 0},
				"badge":         stringSchema(),
				"href":          stringSchema(),
				"inStock":       boolSchema(),
			}),
		},
		{
			Type: TypeOrder, Component: "OrderWidget", Block: "order",
			Render:     renderOrder,
			NewPayload: func() Payload { return &OrderData{} },
			Schema: objectSchema([]string{"orderId"}, map[string]any{
				"orderId":  stringSchema(),
				"status":   stringSchema(),
				"date":     stringSchema(),
				"customer": stringSchema(),
				"total":    scalarSchema(),
				"currency": stringSchema(),
				"items": arraySchema(objectSchema([]string{"name"}, map[string]any{
					"name":     stringSchema(),
					"quantity": map[string]any{"type": "integer", "minimum": 0},
					"price":    scalarSchema(),
				})),
			}),
		},
		{
			Type: TypeList, Component: "ListWidget", Block: "list",
			Render:     renderList,
			NewPayload: func() Payload { return &ListData{} },
			Schema: objectSchema([]string{"items"}, map[string]any{
				"title":     stringSchema(),
				"emptyText": stringSchema(),
				"items": arraySchema(objectSchema([]string{"title"}, map[string]any{
					"id":       stringSchema(),
					"title":    stringSchema(),
					"subtitle": stringSchema(),
					"href":     stringSchema(),
					"meta": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"badge":     stringSchema(),
							"timestamp": stringSchema(),
							"status":    stringSchema(),
						},
					},
				})),
			}),
		},
		{
			Type: TypeText, Component: "TextWidget", Block: "text",
			Render:     renderText,
			NewPayload: func() Payload { return &TextData{} },
			Schema: objectSchema([]string{"body"}, map[string]any{
				"title": stringSchema(),
				"body":  stringSchema(),
				"align": enumSchema("left", "center", "right", "end", "justify"),
			}),
		},
		{
			Type: TypeHeader, Component: "HeaderWidget", Block: "header",
			Render:     renderHeader,
			NewPayload: func() Payload { return &HeaderData{} },
			Schema: objectSchema([]string{"title"}, map[string]any{
				"eyebrow":  stringSchema(),
				"title":    stringSchema(),
				"subtitle": stringSchema(),
				"level":    map[string]any{"type": "integer", "minimum": 1, "maximum": 6},
				"actions":  arraySchema(linkSchema()),
			}),
		},
		{
			Type: TypeCarousel, Component: "CarouselWidget", Block: "carousel",
			Render:     renderCarousel,
			NewPayload: func() Payload { return &CarouselData{} },
			Schema: objectSchema([]string{"slides"}, map[string]any{
				"slides": arraySchema(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":    stringSchema(),
						"title": stringSchema(),
						"body":  stringSchema(),
						"image": imageSchema(),
						"link":  linkSchema(),
					},
				}),
				"settings": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"autoPlay":   boolSchema(),
						"interval":   map[string]any{"type": "integer", "minimum": 0},
						"showDots":   boolSchema(),
						"showArrows": boolSchema(),
						"loop":       boolSchema(),
					},
				},
				"autoPlay": boolSchema(),
				"interval": map[string]any{"type": "integer", "minimum": 0},
			}),
		},
		{
			Type: TypeTestimonial, Component: "TestimonialWidget", Block: "testimonial",
			Render:     renderTestimonial,
			NewPayload: func() Payload { return &TestimonialData{} },
			Schema: objectSchema([]string{"quote", "author"}, map[string]any{
				"quote":   stringSchema(),
				"author":  stringSchema(),
				"role":    stringSchema(),
				"company": stringSchema(),
				"avatar":  imageSchema(),
				"rating":  map[string]any{"type": "number", "minimum": 0, "maximum": 5},
				"settings": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"showRating": boolSchema(),
						"showAvatar": boolSchema(),
					},
				},
				"showRating": boolSchema(),
			}),
		},
		{
			Type: TypeGridCarousel, Component: "GridCarouselWidget", Block: "grid-carousel",
			Render:     renderGridCarousel,
			NewPayload: func() Payload { return &GridCarouselData{} },
			Schema: objectSchema([]string{"items"}, map[string]any{
				"title": stringSchema(),
				"items": arraySchema(objectSchema([]string{"title"}, map[string]any{
					"id":       stringSchema(),
					"title":    stringSchema(),
					"subtitle": stringSchema(),
					"image":    imageSchema(),
					"href":     stringSchema(),
				})),
				"settings": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"itemsPerView": map[string]any{"type": "integer", "minimum": 1},
						"showArrows":   boolSchema(),
					},
				},
				"itemsPerView": map[string]any{"type": "integer", "minimum": 1},
			}),
		},
		{
			Type: TypeContentBlock, Component: "ContentBlockWidget", Block: "content-block",
			Render:     renderContentBlock,
			NewPayload: func() Payload { return &ContentBlockData{} },
			Schema: objectSchema([]string{"title"}, map[string]any{
				"eyebrow":       stringSchema(),
				"title":         stringSchema(),
				"body":          stringSchema(),
				"image":         imageSchema(),
				"imagePosition": enumSchema("left", "right", "top"),
				"actions":       arraySchema(linkSchema()),
			}),
		},
		{
			Type: TypeChart, Component: "ChartWidget", Block: "chart",
			Render:     chart.Render,
			NewPayload: func() Payload { return &ChartData{} },
			Schema: objectSchema([]string{"series"}, map[string]any{
				"title":     stringSchema(),
				"subtitle":  stringSchema(),
				"chartType": enumSchema("bar", "line", "pie", "scatter", "gauge"),
				"xAxis":     arraySchema(stringSchema()),
				"series": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": objectSchema([]string{"name", "data"}, map[string]any{
						"name": stringSchema(),
						"data": arraySchema(map[string]any{"type": "number"}),
					}),
				},
			}),
		},
	}
}

// objectSchema builds a closed object schema. "id" is always accepted.
func objectSchema(required []string, props map[string]any) map[string]any {
	properties := make(map[string]any, len(props)+1)
	properties["id"] = stringSchema()
	for key, value := range props {
		properties[key] = value
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringSchema() map[string]any { return map[string]any{"type": "string"} }

func boolSchema() map[string]any { return map[string]any{"type": "boolean"} }

func scalarSchema() map[string]any {
	return map[string]any{"type": []string{"string", "number", "boolean"}}
}

func enumSchema(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

func arraySchema(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func linkSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"href"},
		"properties": map[string]any{
			"label": stringSchema(),
			"href":  stringSchema(),
		},
	}
}

func imageSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"src"},
		"properties": map[string]any{
			"src": stringSchema(),
			"alt": stringSchema(),
		},
	}
}
