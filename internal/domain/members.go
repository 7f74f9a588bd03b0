package domain

import (
	"encoding/json"
	"reflect"
	"strings"
)

// members is the raw JSON object a value was decoded from. Keys the Go type
// does not model are written back unchanged, and modelled keys that were
// absent stay absent until they hold a non-zero value. A nil members map
// means the value was built in code, so every modelled key is written.
type members map[string]json.RawMessage

func decodeMembers(data []byte, v interface{}) (members, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var raw members
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = members{}
	}
	return raw, nil
}

// encodeMembers encodes v, a struct without JSON methods, merged over raw
func encodeMembers(v interface{}, raw members) ([]byte, error) {
	typed, err := json.Marshal(v)
	if err != nil || raw == nil {
		return typed, err
	}

	var fields members
	if err := json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}

	out := make(members, len(raw)+len(fields))
	for key, value := range raw {
		out[key] = value
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		value, ok := fields[name]
		if name == "" || !ok {
			continue
		}
		if _, present := raw[name]; present || !rv.Field(i).IsZero() {
			out[name] = value
		}
	}
	return json.Marshal(out)
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	raw, err := decodeMembers(data, (*plain)(d))
	d.raw = raw
	return err
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return encodeMembers(plain(d), d.raw)
}

func (t *TransactionDetails) UnmarshalJSON(data []byte) error {
	type plain TransactionDetails
	raw, err := decodeMembers(data, (*plain)(t))
	t.raw = raw
	return err
}

func (t TransactionDetails) MarshalJSON() ([]byte, error) {
	type plain TransactionDetails
	return encodeMembers(plain(t), t.raw)
}

func (d *DocumentDetails) UnmarshalJSON(data []byte) error {
	type plain DocumentDetails
	raw, err := decodeMembers(data, (*plain)(d))
	d.raw = raw
	return err
}

func (d DocumentDetails) MarshalJSON() ([]byte, error) {
	type plain DocumentDetails
	return encodeMembers(plain(d), d.raw)
}

func (p *PartyDetails) UnmarshalJSON(data []byte) error {
	type plain PartyDetails
	raw, err := decodeMembers(data, (*plain)(p))
	p.raw = raw
	return err
}

func (p PartyDetails) MarshalJSON() ([]byte, error) {
	type plain PartyDetails
	return encodeMembers(plain(p), p.raw)
}

func (li *LineItem) UnmarshalJSON(data []byte) error {
	type plain LineItem
	raw, err := decodeMembers(data, (*plain)(li))
	li.raw = raw
	return err
}

func (li LineItem) MarshalJSON() ([]byte, error) {
	type plain LineItem
	return encodeMembers(plain(li), li.raw)
}

func (v *ValueDetails) UnmarshalJSON(data []byte) error {
	type plain ValueDetails
	raw, err := decodeMembers(data, (*plain)(v))
	v.raw = raw
	return err
}

func (v ValueDetails) MarshalJSON() ([]byte, error) {
	type plain ValueDetails
	return encodeMembers(plain(v), v.raw)
}

func (i *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	raw, err := decodeMembers(data, (*plain)(i))
	i.raw = raw
	return err
}

func (i Invoice) MarshalJSON() ([]byte, error) {
	type plain Invoice
	return encodeMembers(plain(i), i.raw)
}
