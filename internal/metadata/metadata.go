package metadata

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// decMode is the package-wide CBOR decoder. It uses the default map type so
// metadata maps with non-string keys still decode; string keys are extracted
// afterwards in fromMap.
var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("metadata: decoder initialization failed: " + err.Error())
	}
}

// Metadata is the decoded view of a compiler metadata map.
type Metadata struct {
	// IPFSHash is the hex rendering of the "ipfs" multihash entry,
	// empty if absent.
	IPFSHash string `json:"ipfsHash,omitempty" yaml:"ipfsHash,omitempty"`

	// SwarmHash is the hex rendering of a "bzzr0" or "bzzr1" entry,
	// empty if absent.
	SwarmHash string `json:"swarmHash,omitempty" yaml:"swarmHash,omitempty"`

	// SolcVersion is the dotted compiler version decoded from the 3-byte
	// "solc" entry (e.g. "0.8.19"), empty if absent.
	SolcVersion string `json:"solcVersion,omitempty" yaml:"solcVersion,omitempty"`

	// Experimental reflects the "experimental" entry when present.
	Experimental bool `json:"experimental,omitempty" yaml:"experimental,omitempty"`

	// Fields holds every string-keyed entry as a hex (or literal) string,
	// including the ones surfaced in the typed fields above.
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// String returns a compact single-line rendering of the recognized entries,
// suitable for appending to a region listing.
func (m *Metadata) String() string {
	var parts []string
	if m.SolcVersion != "" {
		parts = append(parts, "solc="+m.SolcVersion)
	}
	if m.IPFSHash != "" {
		parts = append(parts, "ipfs="+m.IPFSHash)
	}
	if m.SwarmHash != "" {
		parts = append(parts, "swarm="+m.SwarmHash)
	}
	if m.Experimental {
		parts = append(parts, "experimental=true")
	}
	if len(parts) == 0 {
		// Fall back to the raw field map, sorted for stable output.
		keys := make([]string, 0, len(m.Fields))
		for k := range m.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, k+"="+m.Fields[k])
		}
	}
	return strings.Join(parts, " ")
}

// Decode parses a hex-encoded CBOR map, such as the content of a masked
// metadata region. Truncated or otherwise malformed regions return an error;
// callers typically omit the decoded view in that case rather than failing
// the comparison.
func Decode(hexText string) (*Metadata, error) {
	raw, err := hex.DecodeString(hexText)
	if err != nil {
		return nil, fmt.Errorf("metadata region is not valid hex: %w", err)
	}
	return decodeMap(raw)
}

// DecodeTrailing extracts and decodes the metadata block from the end of a
// whitespace-normalized hex bytecode string. The final 2 bytes (4 hex
// characters) encode the big-endian byte length of the CBOR map that
// immediately precedes them.
func DecodeTrailing(normalizedHex string) (*Metadata, error) {
	raw, err := hex.DecodeString(normalizedHex)
	if err != nil {
		return nil, fmt.Errorf("bytecode is not valid hex: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("bytecode too short for a trailing metadata block (%d bytes)", len(raw))
	}

	payloadLen := int(binary.BigEndian.Uint16(raw[len(raw)-2:]))
	end := len(raw) - 2
	if payloadLen == 0 || payloadLen > end {
		return nil, fmt.Errorf("trailing metadata length %d exceeds bytecode size %d", payloadLen, end)
	}

	return decodeMap(raw[end-payloadLen : end])
}

// decodeMap unmarshals CBOR bytes into a Metadata value. The payload must be
// a single complete map; trailing garbage is rejected by checking the
// decoder's consumed byte count.
func decodeMap(payload []byte) (*Metadata, error) {
	dec := decMode.NewDecoder(bytes.NewReader(payload))

	var value map[any]any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decode CBOR metadata: %w", err)
	}
	if dec.NumBytesRead() != len(payload) {
		return nil, fmt.Errorf("metadata block has %d trailing bytes after CBOR map", len(payload)-dec.NumBytesRead())
	}

	return fromMap(value), nil
}

// fromMap converts a decoded CBOR map into the typed Metadata view.
func fromMap(value map[any]any) *Metadata {
	meta := &Metadata{Fields: make(map[string]string, len(value))}

	for k, v := range value {
		key, ok := k.(string)
		if !ok {
			// Non-string keys are outside the compiler metadata
			// convention; render the key itself for visibility.
			key = fmt.Sprintf("%v", k)
		}
		rendered := renderValue(v)
		meta.Fields[key] = rendered

		switch key {
		case "ipfs":
			meta.IPFSHash = rendered
		case "bzzr0", "bzzr1":
			meta.SwarmHash = rendered
		case "solc":
			if b, ok := v.([]byte); ok && len(b) == 3 {
				meta.SolcVersion = fmt.Sprintf("%d.%d.%d", b[0], b[1], b[2])
			}
		case "experimental":
			if b, ok := v.(bool); ok {
				meta.Experimental = b
			}
		}
	}
	return meta
}

// renderValue flattens a CBOR value to a display string: byte strings as
// hex, everything else via fmt.
func renderValue(v any) string {
	switch t := v.(type) {
	case []byte:
		return hex.EncodeToString(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
