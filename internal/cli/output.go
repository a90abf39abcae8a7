package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/browserplus/logaccess/internal/logaccess"
)

// printFiles writes one path per line, or a {"files": [...]} document.
func printFiles(w io.Writer, files []string, asJSON bool) error {
	if asJSON {
		if files == nil {
			files = []string{}
		}
		return printJSON(w, map[string][]string{"files": files})
	}
	for _, f := range files {
		fmt.Fprintln(w, f)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printDescription renders the service description as text.
func printDescription(w io.Writer, d *logaccess.Description, asJSON bool) error {
	if asJSON {
		return printJSON(w, d)
	}
	fmt.Fprintf(w, "%s %s\n", d.Name, d.Version)
	fmt.Fprintf(w, "  %s\n", d.Doc)
	for _, m := range d.Methods {
		fmt.Fprintf(w, "\n%s\n", m.Name)
		fmt.Fprintf(w, "  %s\n", m.Doc)
		for _, a := range m.Arguments {
			req := "optional"
			if a.Required {
				req = "required"
			}
			fmt.Fprintf(w, "  - %s (%s, %s): %s\n", a.Name, a.Type, req, a.Doc)
		}
	}
	return nil
}

// splitServices accepts "a,b" as well as repeated arguments.
func splitServices(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, s := range strings.Split(arg, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
