// Package blob encodes and decodes the engine's persisted state as the
// length-delimited protobuf wire format spec.md §6 requires:
//
//	message Document   { uint64 id = 1; repeated float vector = 2; }
//	message EngineState { uint32 format_version = 1; repeated Document documents = 2; }
//
// No .proto file or generated code backs this: the field numbers and wire
// types are encoded directly against google.golang.org/protobuf/encoding/
// protowire, the same low-level package protoc-generated code itself
// builds on. Unknown fields are skipped on decode per the protobuf
// contract.
package blob

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// FormatVersion is the only format_version this codec accepts.
const FormatVersion = 1

const (
	fieldEngineStateVersion   = protowire.Number(1)
	fieldEngineStateDocuments = protowire.Number(2)
	fieldDocumentID           = protowire.Number(1)
	fieldDocumentVector       = protowire.Number(2)
)

// Document is a single (id, vector) pair, the wire-level counterpart of
// vectorengine's internal document map entry.
type Document struct {
	ID     uint64
	Vector []float32
}

// EngineState is the full persisted snapshot: a format version plus every
// document, in any order.
type EngineState struct {
	FormatVersion uint32
	Documents     []Document
}

// Marshal encodes state as a length-delimited protobuf-wire message.
func Marshal(state EngineState) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldEngineStateVersion, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(state.FormatVersion))

	for _, doc := range state.Documents {
		buf = protowire.AppendTag(buf, fieldEngineStateDocuments, protowire.BytesType)
		buf = protowire.AppendBytes(buf, marshalDocument(doc))
	}

	return buf
}

func marshalDocument(doc Document) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldDocumentID, protowire.VarintType)
	buf = protowire.AppendVarint(buf, doc.ID)

	if len(doc.Vector) > 0 {
		buf = protowire.AppendTag(buf, fieldDocumentVector, protowire.BytesType)
		var packed []byte
		for _, v := range doc.Vector {
			packed = protowire.AppendFixed32(packed, math.Float32bits(v))
		}
		buf = protowire.AppendBytes(buf, packed)
	}

	return buf
}

// Unmarshal decodes a length-delimited protobuf-wire EngineState message.
// Unknown fields are skipped; format_version values other than
// FormatVersion are reported as a distinct error so the caller can
// translate it into a DeserializationError.
func Unmarshal(data []byte) (EngineState, error) {
	var state EngineState
	sawVersion := false

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return EngineState{}, fmt.Errorf("malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldEngineStateVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return EngineState{}, fmt.Errorf("malformed format_version: %w", protowire.ParseError(n))
			}
			data = data[n:]
			state.FormatVersion = uint32(v)
			sawVersion = true

		case num == fieldEngineStateDocuments && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return EngineState{}, fmt.Errorf("malformed documents entry: %w", protowire.ParseError(n))
			}
			data = data[n:]

			doc, err := unmarshalDocument(raw)
			if err != nil {
				return EngineState{}, err
			}
			state.Documents = append(state.Documents, doc)

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return EngineState{}, fmt.Errorf("malformed unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	if !sawVersion {
		return EngineState{}, fmt.Errorf("missing format_version field")
	}
	if state.FormatVersion != FormatVersion {
		return EngineState{}, fmt.Errorf("unsupported format_version %d, want %d", state.FormatVersion, FormatVersion)
	}

	return state, nil
}

func unmarshalDocument(data []byte) (Document, error) {
	var doc Document

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Document{}, fmt.Errorf("malformed document tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldDocumentID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return Document{}, fmt.Errorf("malformed document id: %w", protowire.ParseError(n))
			}
			data = data[n:]
			doc.ID = v

		case num == fieldDocumentVector && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Document{}, fmt.Errorf("malformed document vector: %w", protowire.ParseError(n))
			}
			data = data[n:]

			if len(raw)%4 != 0 {
				return Document{}, fmt.Errorf("packed vector length %d is not a multiple of 4", len(raw))
			}
			vec := make([]float32, 0, len(raw)/4)
			for len(raw) > 0 {
				bits, n := protowire.ConsumeFixed32(raw)
				if n < 0 {
					return Document{}, fmt.Errorf("malformed packed float: %w", protowire.ParseError(n))
				}
				raw = raw[n:]
				vec = append(vec, math.Float32frombits(bits))
			}
			doc.Vector = vec

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Document{}, fmt.Errorf("malformed unknown document field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	return doc, nil
}
