package jmdict

import (
	"encoding/xml"
	"regexp"
)

var reEntityDecl = regexp.MustCompile(`<!ENTITY\s+([\w.-]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// parseEntities extracts the general entity declarations from a DOCTYPE
// directive. Parameter entities are ignored. The first declaration of a name
// wins, as in XML.
func parseEntities(d xml.Directive) map[string]string {
	out := make(map[string]string)
	for _, m := range reEntityDecl.FindAllSubmatch(d, -1) {
		name := string(m[1])
		if _, ok := out[name]; ok {
			continue
		}
		text := m[2]
		if text == nil {
			text = m[3]
		}
		out[name] = string(text)
	}
	return out
}

// identityEntities maps every declared entity to its own name, so that
// "&uk;" decodes to "uk" instead of the long description.
func identityEntities(defs map[string]string) map[string]string {
	out := make(map[string]string, len(defs))
	for name := range defs {
		out[name] = name
	}
	return out
}
