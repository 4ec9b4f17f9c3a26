package schemas

// StyleOption is a named font/color/size preset for text overlays.
// Selected once per run; copied by value into every scheduled overlay.
type StyleOption struct {
	Style    string `json:"style"`
	Font     string `json:"font"`
	Color    string `json:"color"`
	FontSize int    `json:"font_size"`
}

// MetadataOption is one publishable metadata variant, including the
// ordered overlay text list the scheduler distributes across the timeline.
type MetadataOption struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	EmotionalHook string   `json:"emotional_hook"`
	TextHook      string   `json:"text_hook"`
	TextOverlay   []string `json:"text_overlay"`
}

// OverlayText is one scheduled text overlay: a string from the selected
// metadata option plus its computed display window and a full style copy.
type OverlayText struct {
	Text  string      `json:"text"`
	Start Duration    `json:"start"`
	End   Duration    `json:"end"`
	Style StyleOption `json:"style"`
}
