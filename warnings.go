package handout

import (
	"strings"

	"github.com/tsawler/handout/model"
)

// Warning is a non-fatal problem encountered during conversion, such as a
// slide that could not be placed. Conversion continues past warnings; the
// affected cell is simply left blank.
type Warning = model.Warning

// FormatWarnings renders a warning list as a single newline-separated
// string, for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
