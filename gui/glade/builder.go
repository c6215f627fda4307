package glade

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/diamondburned/gotk4/pkg/gtk/v3"
	"github.com/hashicorp/go-multierror"

	"github.com/alanbriolat/songdl/generic"
)

type ReadFunc = func(filename string) ([]byte, error)

// Repository loads Glade files by name and binds their objects into structs.
type Repository struct {
	read ReadFunc
}

func NewRepository(read ReadFunc) *Repository {
	return &Repository{read: read}
}

func (r *Repository) Bind(v interface{}, filename string) error {
	data, err := r.read(filename)
	if err != nil {
		return fmt.Errorf("glade: failed to read %v: %w", filename, err)
	}
	builder, err := NewBuilder(data)
	if err != nil {
		return fmt.Errorf("glade: failed to load %v: %w", filename, err)
	}
	return builder.Bind(v)
}

func (r *Repository) MustBind(v interface{}, filename string) {
	generic.Unwrap_(r.Bind(v, filename))
}

type Builder struct {
	gtkBuilder *gtk.Builder
	ids        generic.Set[string]
}

// NewBuilder checks that data is well-formed Glade XML before handing it to GTK, which aborts the whole process on
// malformed input.
func NewBuilder(data []byte) (*Builder, error) {
	ids, err := objectIDs(data)
	if err != nil {
		return nil, err
	}
	return &Builder{
		gtkBuilder: gtk.NewBuilderFromString(string(data), len(data)),
		ids:        ids,
	}, nil
}

// Bind sets every `glade:"..."` field of the struct v points to. All missing objects are reported at once.
func (b *Builder) Bind(v interface{}) error {
	target := reflect.Indirect(reflect.ValueOf(v))
	bindings, err := collectBindings(target.Type(), nil, "")
	if err != nil {
		return err
	}
	if err := missingObjects(b.ids, bindings); err != nil {
		return err
	}
	for _, binding := range bindings {
		o := b.gtkBuilder.GetObject(binding.ID)
		if o == nil {
			return fmt.Errorf("glade: could not get object %q from builder", binding.ID)
		}
		target.FieldByIndex(binding.Index).Set(reflect.ValueOf(o.Cast()))
	}
	return nil
}

// Check does everything Bind would, short of creating any objects, so it works without a display.
func Check(data []byte, v interface{}) error {
	ids, err := objectIDs(data)
	if err != nil {
		return err
	}
	bindings, err := collectBindings(reflect.Indirect(reflect.ValueOf(v)).Type(), nil, "")
	if err != nil {
		return err
	}
	return missingObjects(ids, bindings)
}

// objectIDs reads the id of every <object> in a Glade document.
func objectIDs(data []byte) (generic.Set[string], error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	ids := generic.NewSet[string]()
	root := ""
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("glade: malformed XML: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if root == "" {
			root = start.Name.Local
			if root != "interface" {
				return nil, fmt.Errorf("glade: root element is <%v>, not <interface>", root)
			}
		}
		if start.Name.Local != "object" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "id" {
				ids.Add(attr.Value)
			}
		}
	}
	if root == "" {
		return nil, errors.New("glade: no <interface> element")
	}
	return ids, nil
}

func missingObjects(ids generic.Set[string], bindings []binding) error {
	var result error
	for _, b := range bindings {
		if !ids.Contains(b.ID) {
			result = multierror.Append(result, fmt.Errorf("glade: no object %q for field %v", b.ID, b.Field))
		}
	}
	return result
}
