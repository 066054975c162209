package attachment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultClass is the :class value of asset records.
const DefaultClass = "assets"

// Params are the values substituted into path and URL templates.
type Params struct {
	Root      string
	Class     string
	ID        string
	Basename  string
	Extension string
	Style     string
}

// tokenRegex matches a whole token. A token ends at the first character
// outside [a-z_], so :identity is one unknown token and not :id + "entity".
var tokenRegex = regexp.MustCompile(`:[a-z_]+`)

// Interpolate replaces the tokens of template with values from p:
//
//	:root :class :id :id_partition :basename :extension :filename
//	:style :no_original_style
//
// Unknown tokens are left as they are.
func Interpolate(template string, p Params) string {
	class := p.Class
	if class == "" {
		class = DefaultClass
	}
	style := p.Style
	if style == "" {
		style = StyleOriginal
	}
	noOriginal := ""
	if style != StyleOriginal {
		noOriginal = "_" + style
	}
	filename := p.Basename
	if p.Extension != "" {
		filename += "." + p.Extension
	}

	values := map[string]string{
		":no_original_style": noOriginal,
		":id_partition":      idPartition(p.ID),
		":extension":         p.Extension,
		":basename":          p.Basename,
		":filename":          filename,
		":class":             class,
		":style":             style,
		":root":              p.Root,
		":id":                p.ID,
	}
	return tokenRegex.ReplaceAllStringFunc(template, func(token string) string {
		if v, ok := values[token]; ok {
			return v
		}
		return token
	})
}

// idPartition splits an ID into three directory levels. Numeric IDs are
// zero padded to nine digits; other IDs use their first nine characters.
func idPartition(id string) string {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		id = fmt.Sprintf("%09d", n)
	}
	id = strings.ReplaceAll(id, "-", "")
	if len(id) < 9 {
		return id
	}
	return id[0:3] + "/" + id[3:6] + "/" + id[6:9]
}
