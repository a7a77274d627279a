// Package schemas embeds the JSON Schema files and registers them with the
// config package on import. CLI entry points should import this package with
// a blank identifier: import _ "github.com/csrwng/infra/schemas"
package schemas

import (
	"embed"

	"github.com/csrwng/infra/internal/config"
)

//go:embed infra-config.schema.json
var fs embed.FS

func init() {
	data, err := fs.ReadFile("infra-config.schema.json")
	if err != nil {
		panic("schemas: failed to read embedded infra-config.schema.json: " + err.Error())
	}
	config.SetSchema(data)
}
