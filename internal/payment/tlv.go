package payment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field is one EMVCo tag-length-value entry of a merchant-presented QR payload
type Field struct {
	ID    string
	Value string
}

// ParseTLV splits a payload into its top-level fields
func ParseTLV(payload string) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(payload); {
		if i+4 > len(payload) {
			return nil, fmt.Errorf("%w: truncated field header at offset %d", ErrInvalidPayload, i)
		}
		id := payload[i : i+2]
		length := payload[i+2 : i+4]
		if !isDigit(length[0]) || !isDigit(length[1]) {
			return nil, fmt.Errorf("%w: bad length for tag %s", ErrInvalidPayload, id)
		}
		n, _ := strconv.Atoi(length)
		start := i + 4
		if start+n > len(payload) {
			return nil, fmt.Errorf("%w: tag %s overruns payload", ErrInvalidPayload, id)
		}
		fields = append(fields, Field{ID: id, Value: payload[start : start+n]})
		i = start + n
	}
	return fields, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// EncodeTLV writes fields back in the order given
func EncodeTLV(fields []Field) (string, error) {
	var b strings.Builder
	for _, f := range fields {
		if len(f.ID) != 2 {
			return "", fmt.Errorf("%w: tag id %q", ErrInvalidPayload, f.ID)
		}
		if len(f.Value) > 99 {
			return "", fmt.Errorf("%w: tag %s value too long", ErrInvalidPayload, f.ID)
		}
		fmt.Fprintf(&b, "%s%02d%s", f.ID, len(f.Value), f.Value)
	}
	return b.String(), nil
}

func lookup(fields []Field, id string) (string, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f.Value, true
		}
	}
	return "", false
}

// setField replaces the value of id or appends it, then keeps fields ordered by tag id
func setField(fields []Field, id, value string) []Field {
	out := removeFields(fields, id)
	out = append(out, Field{ID: id, Value: value})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func removeFields(fields []Field, ids ...string) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		drop := false
		for _, id := range ids {
			if f.ID == id {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, f)
		}
	}
	return out
}
