package render

import (
	"github.com/google/uuid"

	"github.com/danceshorts/shortsfx/pkg/config"
	"github.com/danceshorts/shortsfx/pkg/overlay"
	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// NewRequest builds a RenderRequest from a loaded project. The style
// and metadata selectors come from the project files; a selector naming
// a missing option falls back to the first key in sorted order, so the
// same configuration always renders the same short.
func NewRequest(project *config.Project, outputPath string, dryRun bool) (schemas.RenderRequest, error) {
	styleKey, style, _, err := overlay.Select(project.Styles.Options, project.Styles.Default, "style")
	if err != nil {
		return schemas.RenderRequest{}, err
	}

	optionKey, option, optionFell, err := overlay.Select(project.Metadata.Options, project.Metadata.Recommended, "metadata")
	if err != nil {
		return schemas.RenderRequest{}, err
	}

	texts, err := overlay.TextsFor(optionKey, option)
	if err != nil {
		return schemas.RenderRequest{}, err
	}

	return schemas.RenderRequest{
		RunID:      uuid.NewString(),
		Scenes:     project.Scenes,
		Texts:      texts,
		Style:      style,
		StyleKey:   styleKey,
		OptionKey:  optionKey,
		OptionFell: optionFell,
		OutputPath: outputPath,
		DryRun:     dryRun,
	}, nil
}
