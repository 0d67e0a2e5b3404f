// internal/domain/registry/field.go
package registry

// Field is a logical column of the registry, independent of its physical position.
type Field int

const (
	FieldRecipient Field = iota
	FieldExpiry
	FieldSubjectID
	FieldSubjectName
	FieldMarker5
	FieldMarker1
)

// Fields lists every logical field in the order they are reported when missing.
var Fields = []Field{
	FieldRecipient,
	FieldExpiry,
	FieldSubjectID,
	FieldSubjectName,
	FieldMarker5,
	FieldMarker1,
}

// DisplayName is the label used when a field is reported as missing.
func (f Field) DisplayName() string {
	switch f {
	case FieldRecipient:
		return "Email"
	case FieldExpiry:
		return "Thời hạn sử dụng GPTs"
	case FieldSubjectID:
		return "ID (GPT ID)"
	case FieldSubjectName:
		return "Tên GPTs"
	case FieldMarker5:
		return "Đã gửi trước 5 ngày"
	case FieldMarker1:
		return "Đã gửi trước 1 ngày"
	default:
		return "unknown"
	}
}

// Key is the stable identifier used in alias override files.
func (f Field) Key() string {
	switch f {
	case FieldRecipient:
		return "email"
	case FieldExpiry:
		return "expire"
	case FieldSubjectID:
		return "gpt_id"
	case FieldSubjectName:
		return "gpt_name"
	case FieldMarker5:
		return "sent_5d"
	case FieldMarker1:
		return "sent_1d"
	default:
		return ""
	}
}

// FieldByKey returns the field whose Key matches key.
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key() == key {
			return f, true
		}
	}
	return 0, false
}

func (f Field) String() string {
	return f.Key()
}
