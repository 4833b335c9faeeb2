package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/spaolacci/murmur3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

var directions = []domain.Direction{domain.DirectionIP, domain.DirectionEndpoint}

func encodeJSON(snapshot *domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// decodeJSON requires exactly the IP and ENDPOINT top-level keys.
func decodeJSON(data []byte) (*domain.Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}

	snapshot := &domain.Snapshot{}
	for _, d := range directions {
		raw, ok := top[string(d)]
		if !ok {
			return nil, fmt.Errorf("%w: missing top-level key %q", domain.ErrCorrupt, d)
		}
		var table domain.Table
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("%w: decoding %s table: %v", domain.ErrCorrupt, d, err)
		}
		if table == nil {
			return nil, fmt.Errorf("%w: %s table is null", domain.ErrCorrupt, d)
		}
		if d == domain.DirectionIP {
			snapshot.IP = table
		} else {
			snapshot.Endpoint = table
		}
	}

	if len(top) != len(directions) {
		return nil, fmt.Errorf("%w: expected only %s and %s top-level keys, got %d keys",
			domain.ErrCorrupt, domain.DirectionIP, domain.DirectionEndpoint, len(top))
	}
	return snapshot, nil
}

func encodeBinary(snapshot *domain.Snapshot, codec Compression) ([]byte, error) {
	payload, err := msgpack.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot too large: %d bytes", len(payload))
	}

	body, used, err := compress(codec, payload)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(body))
	if err := WriteHeader(&buf, used, murmur3.Sum32(payload), uint32(len(payload))); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

func decodeBinary(data []byte) (*domain.Snapshot, error) {
	header, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid file header: %v", domain.ErrCorrupt, err)
	}

	body := data[HeaderSize:]
	if err := checkLength(header.Codec(), body, header.Length); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}

	payload, err := decompress(header.Codec(), body, int(header.Length))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}
	if len(payload) != int(header.Length) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", domain.ErrCorrupt, len(payload), header.Length)
	}
	if sum := murmur3.Sum32(payload); sum != header.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch (%08x != %08x)", domain.ErrCorrupt, sum, header.Checksum)
	}

	var snapshot domain.Snapshot
	if err := msgpack.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: failed to decode MessagePack: %v", domain.ErrCorrupt, err)
	}
	if snapshot.IP == nil {
		snapshot.IP = make(domain.Table)
	}
	if snapshot.Endpoint == nil {
		snapshot.Endpoint = make(domain.Table)
	}
	return &snapshot, nil
}
