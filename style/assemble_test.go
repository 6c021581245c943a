package style_test

import (
	"encoding/json"
	"errors"
	"testing"

	"cssbag/style"
)

func resolve(t *testing.T, input map[string]any) style.Bag {
	t.Helper()
	bag, err := style.NewResolver(nil).Resolve(input)
	if err != nil {
		t.Fatalf("Resolve(%v): %v", input, err)
	}
	return bag
}

func TestResolve_Basic(t *testing.T) {
	bag := resolve(t, map[string]any{
		"width":     "10px",
		"height":    200,
		"color":     "#ff0000",
		"display":   "grid",
		"flex_grow": 2,
	})

	if bag["width"] != style.Px(10) {
		t.Errorf("width = %v", bag["width"])
	}
	if bag["height"] != style.Px(200) {
		t.Errorf("height = %v", bag["height"])
	}
	if bag["color"] != style.PackedColor(0xff0000) {
		t.Errorf("color = %v", bag["color"])
	}
	if bag["display"] != style.DisplayGrid {
		t.Errorf("display = %v", bag["display"])
	}
	if bag["flex_grow"] != 2.0 {
		t.Errorf("flex_grow = %v", bag["flex_grow"])
	}
}

func TestResolve_NameNormalization(t *testing.T) {
	bag := resolve(t, map[string]any{
		"minWidth":        "2rem",
		"max-height":      "50%",
		"text overflow":   "ellipsis",
		"flexDirection":   "column",
		"backgroundColor": "blue",
	})

	if bag["min_width"] != style.Rem(2) {
		t.Errorf("min_width = %v", bag["min_width"])
	}
	if bag["max_height"] != style.Percent(50) {
		t.Errorf("max_height = %v", bag["max_height"])
	}
	if bag["text_overflow"] != style.TextOverflowEllipsis {
		t.Errorf("text_overflow = %v", bag["text_overflow"])
	}
	if bag["flex_direction"] != style.FlexColumn {
		t.Errorf("flex_direction = %v", bag["flex_direction"])
	}
	if bag["background_color"] != style.PackedColor(0x0000ff) {
		t.Errorf("background_color = %v", bag["background_color"])
	}
}

func TestResolve_VendorPrefixes(t *testing.T) {
	bag := resolve(t, map[string]any{"-webkit-line-clamp": 3})
	if bag["line_clamp"] != 3.0 {
		t.Errorf("line_clamp = %v", bag["line_clamp"])
	}

	// an unknown name behind a vendor prefix is a hard failure
	_, err := style.NewResolver(nil).Resolve(map[string]any{"-webkit-frobnicate": 1})
	if err == nil {
		t.Error("expected error for unrecognized prefixed property")
	}
}

func TestResolve_UnknownAndGlobals(t *testing.T) {
	// unknown names and global keyword values are dropped silently; an
	// empty result is nil, not an empty map
	bag, err := style.NewResolver(nil).Resolve(map[string]any{
		"zorp":  1,
		"width": "inherit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bag != nil {
		t.Errorf("expected nil bag, got %v", bag)
	}
}

func TestResolve_SideGroups(t *testing.T) {
	bag := resolve(t, map[string]any{
		"padding":      "1px 2px",
		"padding_left": "5px",
	})
	want := style.Sides{Top: style.Px(1), Right: style.Px(2), Bottom: style.Px(1), Left: style.Px(5)}
	if bag["padding"] != want {
		t.Errorf("padding = %+v, want %+v", bag["padding"], want)
	}
}

func TestResolve_EdgeOverridesOnly(t *testing.T) {
	// overrides without a shorthand base: missing edges default to zero
	bag := resolve(t, map[string]any{"top": 4, "left": "2px"})
	want := style.Sides{Top: style.Px(4), Right: style.Px(0), Bottom: style.Px(0), Left: style.Px(2)}
	if bag["inset"] != want {
		t.Errorf("inset = %+v, want %+v", bag["inset"], want)
	}
}

func TestResolve_SidesCanonicalization(t *testing.T) {
	bag := resolve(t, map[string]any{"margin": "5px 5px 5px 5px"})

	b, err := json.Marshal(bag["margin"])
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "5" {
		t.Errorf("equal edges must serialize as a single value, got %s", b)
	}
}

func TestResolve_StrictFailuresAggregate(t *testing.T) {
	_, err := style.NewResolver(nil).Resolve(map[string]any{
		"color":        "nope",
		"border_color": "rgb(300, 0, 0)",
		"width":        "10px",
	})
	if !errors.Is(err, style.ErrUnsupportedColorFormat) {
		t.Errorf("expected ErrUnsupportedColorFormat in aggregate, got %v", err)
	}
	if !errors.Is(err, style.ErrInvalidColorComponent) {
		t.Errorf("expected ErrInvalidColorComponent in aggregate, got %v", err)
	}
}

func TestResolve_StrictFailureKeepsOthers(t *testing.T) {
	bag, err := style.NewResolver(nil).Resolve(map[string]any{
		"color": "nope",
		"width": "10px",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if bag["width"] != style.Px(10) {
		t.Errorf("width should survive a sibling failure, got %v", bag["width"])
	}
	if _, ok := bag["color"]; ok {
		t.Error("failed property must be omitted from the bag")
	}
}

func TestResolve_StructuredColors(t *testing.T) {
	bag := resolve(t, map[string]any{
		"color":            16711680,
		"background_color": []any{0.0, 0.0, 255.0, 0.5},
	})
	if bag["color"] != style.PackedColor(0xff0000) {
		t.Errorf("packed color = %v", bag["color"])
	}
	if bag["background_color"] != style.ComponentColor(0, 0, 255, 0.5) {
		t.Errorf("component color = %v", bag["background_color"])
	}

	// ranges are strict for structured values too, never truncated
	bad := []map[string]any{
		{"color": []any{300.0, 0.0, 0.0, 1.0}},
		{"color": []any{-1.0, 0.0, 0.0, 1.0}},
		{"color": []any{0.0, 0.0, 0.0, 1.5}},
		{"color": []any{0.0, 0.0, 0.0, -0.1}},
		{"color": -1},
		{"color": 0x1000000},
	}
	for _, input := range bad {
		bag, err := style.NewResolver(nil).Resolve(input)
		if !errors.Is(err, style.ErrInvalidColorComponent) {
			t.Errorf("Resolve(%v): expected ErrInvalidColorComponent, got %v", input, err)
		}
		if _, ok := bag["color"]; ok {
			t.Errorf("Resolve(%v): out-of-range color must not reach the bag", input)
		}
	}
}

func TestResolve_ComplexValues(t *testing.T) {
	bag := resolve(t, map[string]any{
		"background_image":      "linear-gradient(to right, red, blue)",
		"box_shadow":            "1px 1px 2px #00000080",
		"grid_template_columns": "repeat(2, 1fr) 100px",
		"grid_row":              "1 / 3",
		"gap":                   "4px 8px",
		"aspect_ratio":          "16/9",
	})

	grad, ok := bag["background_image"].(style.Gradient)
	if !ok || grad.Angle != 90 || len(grad.Stops) != 2 {
		t.Errorf("background_image = %+v", bag["background_image"])
	}
	shadows, ok := bag["box_shadow"].([]style.BoxShadow)
	if !ok || len(shadows) != 1 {
		t.Errorf("box_shadow = %+v", bag["box_shadow"])
	}
	tracks, ok := bag["grid_template_columns"].([]style.TemplateComponent)
	if !ok || len(tracks) != 2 {
		t.Errorf("grid_template_columns = %+v", bag["grid_template_columns"])
	}
	placement, ok := bag["grid_row"].(style.GridPlacement)
	if !ok || placement.Start.Index != 1 || placement.End.Index != 3 {
		t.Errorf("grid_row = %+v", bag["grid_row"])
	}
	if bag["gap"] != (style.Gap{Row: style.Px(4), Column: style.Px(8)}) {
		t.Errorf("gap = %+v", bag["gap"])
	}
	if bag["aspect_ratio"] != 16.0/9.0 {
		t.Errorf("aspect_ratio = %v", bag["aspect_ratio"])
	}
}

func TestResolve_Empty(t *testing.T) {
	bag, err := style.NewResolver(nil).Resolve(nil)
	if err != nil || bag != nil {
		t.Errorf("Resolve(nil) = %v, %v", bag, err)
	}
	bag, err = style.NewResolver(nil).Resolve(map[string]any{})
	if err != nil || bag != nil {
		t.Errorf("Resolve(empty) = %v, %v", bag, err)
	}
}
