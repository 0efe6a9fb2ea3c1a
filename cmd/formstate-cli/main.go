// Command formstate-cli fills a form definition interactively and prints the
// resulting entity. It is a demonstration collaborator for the state
// container: every answer becomes one transition, validation errors surface
// after each step, and conversion only happens once the snapshot is valid.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	_ "embed"

	formstate "github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/prompt"
	"github.com/goliatone/go-formstate/pkg/state"
)

//go:embed contact.yaml
var defaultDefinition []byte

type contactFields struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Website string  `json:"website,omitempty"`
	Age     float64 `json:"age,omitempty"`
}

func main() {
	defPath := flag.String("definition", "", "YAML form definition (embedded contact form if empty)")
	source := flag.String("source", "", "OpenAPI document path (overrides -definition)")
	operation := flag.String("operation", "createContact", "operation ID when loading from an OpenAPI document")
	entityID := flag.String("id", "", "entity identity to convert with (minted if empty)")
	flag.Parse()

	ctx := context.Background()

	form, def, err := buildForm(ctx, *defPath, *source, *operation)
	if err != nil {
		log.Fatalf("Failed to load definition: %v", err)
	}

	driver := prompt.NewSurveyDriver()
	snap, err := prompt.Fill(ctx, driver, form, def, patchFor,
		prompt.WithConfirmation[contactFields]("Convert the snapshot to an entity?"),
	)
	if errors.Is(err, prompt.ErrDeclined) {
		fmt.Fprintln(os.Stderr, "Conversion declined; nothing written.")
		return
	}
	if err != nil {
		log.Fatalf("Failed to fill form: %v", err)
	}

	if !snap.Valid() {
		fmt.Fprintln(os.Stderr, "Form is not valid:")
		mapping := snap.Errors()
		for _, field := range mapping.Fields() {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, strings.Join(mapping[field], "; "))
		}
		os.Exit(1)
	}

	id := strings.TrimSpace(*entityID)
	if id == "" {
		id = formstate.NewID()
	}
	entity, err := form.ToEntity(snap, id)
	if err != nil {
		log.Fatalf("Failed to convert snapshot: %v", err)
	}

	payload, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode entity: %v", err)
	}
	fmt.Println(string(payload))
}

func buildForm(ctx context.Context, defPath, source, operation string) (formstate.Form[contactFields], definition.Form, error) {
	bind := definition.Bindings[contactFields]{
		"name":    {String: func(f contactFields) string { return f.Name }},
		"email":   {String: func(f contactFields) string { return f.Email }},
		"website": {String: func(f contactFields) string { return f.Website }},
		"age":     {Number: func(f contactFields) float64 { return f.Age }},
	}

	if source != "" {
		data, err := os.ReadFile(source)
		if err != nil {
			return formstate.Form[contactFields]{}, definition.Form{}, err
		}
		return formstate.FromOpenAPI(ctx, data, operation, bind)
	}

	data := defaultDefinition
	if defPath != "" {
		var err error
		data, err = os.ReadFile(defPath)
		if err != nil {
			return formstate.Form[contactFields]{}, definition.Form{}, err
		}
	}
	return formstate.FromYAML(data, bind)
}

func patchFor(field, value string) state.Patch[contactFields] {
	switch field {
	case "name":
		return state.PatchFunc[contactFields](func(f contactFields) contactFields {
			f.Name = value
			return f
		})
	case "email":
		return state.PatchFunc[contactFields](func(f contactFields) contactFields {
			f.Email = value
			return f
		})
	case "website":
		return state.PatchFunc[contactFields](func(f contactFields) contactFields {
			f.Website = value
			return f
		})
	case "age":
		age, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			age = 0
		}
		return state.PatchFunc[contactFields](func(f contactFields) contactFields {
			f.Age = age
			return f
		})
	default:
		return nil
	}
}
