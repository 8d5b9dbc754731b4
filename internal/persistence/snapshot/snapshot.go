// Package snapshot encodes game saves as zstd-compressed JSON.
//
// A blob is a zstd frame holding one JSON header line followed by the JSON
// body. The header is enough to list a save without decoding it fully.
package snapshot

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/everforgeworks/idleforge/internal/game"
)

// MaxDecodedSize caps how much a blob may expand to.
const MaxDecodedSize = 8 << 20

//go:embed save.schema.json
var saveSchemaJSON string

var saveSchema = jsonschema.MustCompileString("save.schema.json", saveSchemaJSON)

// Header is the first line of every blob.
type Header struct {
	Version         int       `json:"version"`
	SaveID          string    `json:"save_id"`
	SavedAt         time.Time `json:"saved_at"`
	PlayTimeSeconds float64   `json:"play_time_seconds"`
}

// Encode serializes a save.
func Encode(s game.SaveState) ([]byte, error) {
	hb, err := json.Marshal(Header{
		Version:         s.Version,
		SaveID:          s.SaveID,
		SavedAt:         s.SavedAt,
		PlayTimeSeconds: s.Statistics.PlayTimeSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(enc)
	bw.Write(hb)
	bw.WriteByte('\n')
	bw.Write(body)
	if err := bw.Flush(); err != nil {
		enc.Close()
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses and validates a blob produced by Encode.
// Any malformed input yields an error wrapping game.ErrCorruptState.
func Decode(blob []byte) (game.SaveState, error) {
	var s game.SaveState
	_, body, err := split(blob)
	if err != nil {
		return s, err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return s, fmt.Errorf("parse save: %v: %w", err, game.ErrCorruptState)
	}
	if err := saveSchema.Validate(doc); err != nil {
		return s, fmt.Errorf("validate save: %v: %w", err, game.ErrCorruptState)
	}
	if err := json.Unmarshal(body, &s); err != nil {
		return s, fmt.Errorf("decode save: %v: %w", err, game.ErrCorruptState)
	}
	return s, nil
}

// ReadHeader returns only the header line of a blob.
func ReadHeader(blob []byte) (Header, error) {
	var h Header
	line, _, err := split(blob)
	if err != nil {
		return h, err
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("parse header: %v: %w", err, game.ErrCorruptState)
	}
	return h, nil
}

func split(blob []byte) (header, body []byte, err error) {
	if len(blob) == 0 {
		return nil, nil, fmt.Errorf("empty blob: %w", game.ErrCorruptState)
	}
	dec, err := zstd.NewReader(bytes.NewReader(blob), zstd.WithDecoderMaxMemory(MaxDecodedSize))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress: %v: %w", err, game.ErrCorruptState)
	}
	defer dec.Close()

	raw, err := io.ReadAll(io.LimitReader(dec, MaxDecodedSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress: %v: %w", err, game.ErrCorruptState)
	}
	if len(raw) > MaxDecodedSize {
		return nil, nil, fmt.Errorf("decompress: larger than %d bytes: %w", MaxDecodedSize, game.ErrCorruptState)
	}

	header, body, ok := bytes.Cut(raw, []byte{'\n'})
	if !ok {
		return nil, nil, fmt.Errorf("missing header line: %w", game.ErrCorruptState)
	}
	return header, body, nil
}
