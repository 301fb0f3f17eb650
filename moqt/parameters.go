package moqt

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/quic-go/quic-go/quicvarint"
)

// ParameterType identifies a negotiable option carried in SETUP, SUBSCRIBE
// and similar messages.
type ParameterType uint64

const (
	paramTypePath               ParameterType = 0x01
	paramTypeAuthorizationInfo  ParameterType = 0x02
)

// ErrParameterNotFound is returned by the Get* accessors when key isn't
// present.
var ErrParameterNotFound = errors.New("moqt: parameter not found")

// NewParameters builds an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{values: make(message.Parameters)}
}

// Parameters is a MOQ parameter set: an untyped map of small integer keys to
// byte-string values, with typed accessors layered on top for the encodings
// the protocol actually uses (byte strings, UTF-8 strings, varints, and
// bool-as-varint).
type Parameters struct {
	values message.Parameters
}

// Clone returns an independent copy of p.
func (p *Parameters) Clone() *Parameters {
	return &Parameters{values: maps.Clone(p.values)}
}

func (p Parameters) String() string {
	var sb strings.Builder
	sb.WriteString("Parameters: {")
	for key, value := range p.values {
		fmt.Fprintf(&sb, " %d: %v,", key, value)
	}
	sb.WriteString(" }")
	return sb.String()
}

func (p *Parameters) set(key ParameterType, value []byte) {
	if p.values == nil {
		p.values = make(message.Parameters)
	}
	p.values[uint64(key)] = value
}

// SetByteArray stores value verbatim under key.
func (p *Parameters) SetByteArray(key ParameterType, value []byte) {
	p.set(key, value)
}

// SetString stores value's UTF-8 bytes under key.
func (p *Parameters) SetString(key ParameterType, value string) {
	p.set(key, []byte(value))
}

// SetUint stores value as a varint under key.
func (p *Parameters) SetUint(key ParameterType, value uint64) {
	p.set(key, quicvarint.Append(nil, value))
}

// SetBool stores value as the varint 0 or 1 under key.
func (p *Parameters) SetBool(key ParameterType, value bool) {
	var v uint64
	if value {
		v = 1
	}
	p.set(key, quicvarint.Append(nil, v))
}

// Remove deletes key, if present.
func (p *Parameters) Remove(key ParameterType) {
	if p.values != nil {
		delete(p.values, uint64(key))
	}
}

// GetByteArray returns key's raw value.
func (p Parameters) GetByteArray(key ParameterType) ([]byte, error) {
	if p.values == nil {
		return nil, ErrParameterNotFound
	}
	value, ok := p.values[uint64(key)]
	if !ok {
		return nil, ErrParameterNotFound
	}
	return value, nil
}

// GetString returns key's value interpreted as UTF-8.
func (p Parameters) GetString(key ParameterType) (string, error) {
	value, err := p.GetByteArray(key)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// GetUint returns key's value decoded as a varint.
func (p Parameters) GetUint(key ParameterType) (uint64, error) {
	value, err := p.GetByteArray(key)
	if err != nil {
		return 0, err
	}

	num, err := quicvarint.Read(quicvarint.NewReader(bytes.NewReader(value)))
	if err != nil {
		slog.Error("moqt: parameter is not a valid varint", "key", key, "error", err)
		return 0, err
	}
	return num, nil
}

// GetBool returns key's value decoded as a varint and interpreted as a
// boolean (0 or 1; any other value is an error).
func (p Parameters) GetBool(key ParameterType) (bool, error) {
	num, err := p.GetUint(key)
	if err != nil {
		return false, err
	}

	switch num {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("moqt: parameter %d holds %d, not a bool", key, num)
	}
}
