// Package template provides a Handlebars template engine.
//
// Unlike raymond's package-level registries, each Engine owns its named
// templates and helpers. A template registered on an engine can be rendered
// by name and is available as a partial to every later render on that
// engine. Helpers apply only to renders started after they are registered.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	if err := engine.RegisterTemplate("frame", "<main>{{> body}}</main>"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := engine.RegisterHelper("uppercase", template.Uppercase); err != nil {
//	    log.Fatal(err)
//	}
//
//	data := map[string]interface{}{"plants": []string{"peas", "corn"}}
//	result, err := engine.RenderTemplate("{{#each plants}}{{uppercase this}} {{/each}}", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: PEAS CORN
package template
