package glade

import (
	"fmt"
	"reflect"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// BindError reports a struct field that cannot be bound to a Glade object.
type BindError struct {
	Type  reflect.Type
	Field string
	Msg   string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("glade: %v.%v: %v", e.Type, e.Field, e.Msg)
}

// A binding is one struct field and the id of the object it receives.
type binding struct {
	Index []int
	ID    string
	Field string
}

var objectorType = reflect.TypeOf((*glib.Objector)(nil)).Elem()

// collectBindings walks the `glade:"..."` tags of t. A GTK pointer field binds to the object with that id; a struct
// field is walked in turn, with its tag prefixed to the ids inside it. Untagged and embedded fields are skipped,
// though the fields an embedded struct promotes are not.
func collectBindings(t reflect.Type, index []int, prefix string) ([]binding, error) {
	out := []binding{}
	for _, sf := range reflect.VisibleFields(t) {
		tag, tagged := sf.Tag.Lookup("glade")
		if sf.Anonymous || !tagged {
			continue
		}
		fail := func(format string, args ...interface{}) ([]binding, error) {
			return nil, &BindError{Type: t, Field: sf.Name, Msg: fmt.Sprintf(format, args...)}
		}
		fieldIndex := append(append([]int(nil), index...), sf.Index...)

		switch {
		case !sf.IsExported():
			return fail("tagged but not exported")
		case sf.Type.Kind() == reflect.Pointer && sf.Type.Implements(objectorType):
			if tag == "" {
				return fail("empty glade tag")
			}
			out = append(out, binding{Index: fieldIndex, ID: prefix + tag, Field: sf.Name})
		case sf.Type.Kind() == reflect.Struct:
			if reflect.PointerTo(sf.Type).Implements(objectorType) {
				return fail("%v must be a pointer", sf.Type)
			}
			inner, err := collectBindings(sf.Type, fieldIndex, prefix+tag)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		default:
			return fail("unsupported type %v", sf.Type)
		}
	}
	return out, nil
}

func bindingsOf[T any]() ([]binding, error) {
	return collectBindings(reflect.TypeOf((*T)(nil)).Elem(), nil, "")
}
