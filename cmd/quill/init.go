package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/derive/descriptor"
)

var initOut string

func init() {
	initCmd.Flags().StringVar(&initOut, "out", "descriptor.json", "Where to write the scaffolded descriptor")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively scaffold a record descriptor",
	Long:  "Walk through record name, generic parameters, and fields to produce a descriptor JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(initOut); err == nil {
			return fmt.Errorf("%s already exists", initOut)
		}

		doc := descriptor.Document{Kind: "record"}

		prompt := &survey.Input{Message: "Record name:"}
		if err := survey.AskOne(prompt, &doc.Name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}

		var paramList string
		if err := survey.AskOne(&survey.Input{
			Message: "Generic parameters (comma-separated, empty for none):",
		}, &paramList); err != nil {
			return err
		}
		for _, name := range strings.Split(paramList, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				doc.Params = append(doc.Params, descriptor.ParamDoc{Name: name})
			}
		}

		for {
			var fieldName string
			if err := survey.AskOne(&survey.Input{
				Message: "Field name (empty to finish):",
			}, &fieldName); err != nil {
				return err
			}
			fieldName = strings.TrimSpace(fieldName)
			if fieldName == "" {
				break
			}

			var typeText string
			if err := survey.AskOne(&survey.Input{
				Message: fmt.Sprintf("Type of %s (e.g. String, List[String], Option[T], T.Value):", fieldName),
			}, &typeText, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
			typ, err := scaffoldType(strings.TrimSpace(typeText))
			if err != nil {
				return err
			}

			var attrText string
			if err := survey.AskOne(&survey.Input{
				Message: "Attribute (e.g. builder(each = \"arg\"), empty for none):",
			}, &attrText); err != nil {
				return err
			}
			field := descriptor.FieldDoc{Name: fieldName, Type: typ}
			if attr, ok := scaffoldAttr(strings.TrimSpace(attrText)); ok {
				field.Attrs = append(field.Attrs, attr)
			}
			doc.Fields = append(doc.Fields, field)
		}

		if len(doc.Fields) == 0 {
			return fmt.Errorf("a record descriptor needs at least one field")
		}

		data, err := json.MarshalIndent(&doc, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(initOut, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", initOut, err)
		}

		fmt.Printf("Wrote %s\n", initOut)
		fmt.Printf("Next: quill derive --target builder %s\n", initOut)
		return nil
	},
}

// scaffoldType parses the small type syntax accepted by the scaffolder:
// dotted path segments with optional bracketed arguments. This is a
// convenience for init only; real hosts deliver types already parsed.
func scaffoldType(text string) (*descriptor.TypeDoc, error) {
	typ, rest, err := parseScaffoldType(text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse type %q: %w", text, err)
	}
	if rest != "" {
		return nil, fmt.Errorf("cannot parse type %q: trailing %q", text, rest)
	}
	return typ, nil
}

func parseScaffoldType(text string) (*descriptor.TypeDoc, string, error) {
	doc := &descriptor.TypeDoc{}
	rest := text
	for {
		name, after := scanScaffoldIdent(rest)
		if name == "" {
			return nil, "", fmt.Errorf("expected identifier at %q", rest)
		}
		seg := descriptor.SegmentDoc{Name: name}
		rest = after

		if strings.HasPrefix(rest, "[") {
			rest = rest[1:]
			for {
				arg, after, err := parseScaffoldType(rest)
				if err != nil {
					return nil, "", err
				}
				seg.Args = append(seg.Args, *arg)
				rest = strings.TrimLeft(after, " ")
				if strings.HasPrefix(rest, ",") {
					rest = strings.TrimLeft(rest[1:], " ")
					continue
				}
				if strings.HasPrefix(rest, "]") {
					rest = rest[1:]
					break
				}
				return nil, "", fmt.Errorf("expected ',' or ']' at %q", rest)
			}
		}
		doc.Path = append(doc.Path, seg)

		if strings.HasPrefix(rest, ".") {
			rest = rest[1:]
			continue
		}
		return doc, rest, nil
	}
}

func scanScaffoldIdent(text string) (ident, rest string) {
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || i > 0 && c >= '0' && c <= '9' {
			i++
			continue
		}
		break
	}
	return text[:i], text[i:]
}

// scaffoldAttr splits `name(args)` into an attribute document.
func scaffoldAttr(text string) (descriptor.AttrDoc, bool) {
	open := strings.IndexByte(text, '(')
	if open <= 0 || !strings.HasSuffix(text, ")") {
		return descriptor.AttrDoc{}, false
	}
	return descriptor.AttrDoc{
		Name: text[:open],
		Args: text[open+1 : len(text)-1],
	}, true
}
