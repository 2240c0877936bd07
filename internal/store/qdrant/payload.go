// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

package qdrant

import (
	"strconv"

	qdrantclient "github.com/qdrant/go-client/qdrant"
)

// Payload layout: {"content": <string>, "metadata": {<caller map>}}.
// Filters address metadata fields as "metadata.<key>".
const (
	payloadContentKey  = "content"
	payloadMetadataKey = "metadata"
	metadataKeyPrefix  = "metadata."
)

// buildPayload produces the stored payload for a point. Nil metadata is
// stored as an empty map so list output renders consistently.
func buildPayload(content string, metadata map[string]any) map[string]*qdrantclient.Value {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return qdrantclient.NewValueMap(map[string]any{
		payloadContentKey:  content,
		payloadMetadataKey: metadata,
	})
}

// parsePayload extracts content and metadata from a stored payload. Points
// written by other clients may lack either field; missing values come back
// as zero values.
func parsePayload(payload map[string]*qdrantclient.Value) (string, map[string]any) {
	var content string
	if v, ok := payload[payloadContentKey]; ok {
		content = v.GetStringValue()
	}

	metadata := map[string]any{}
	if v, ok := payload[payloadMetadataKey]; ok {
		if fields := v.GetStructValue().GetFields(); fields != nil {
			metadata = valueMapToAny(fields)
		}
	}
	return content, metadata
}

func valueMapToAny(fields map[string]*qdrantclient.Value) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = valueToAny(v)
	}
	return out
}

// valueToAny converts a Qdrant payload value back into plain Go data.
func valueToAny(v *qdrantclient.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrantclient.Value_StringValue:
		return kind.StringValue
	case *qdrantclient.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrantclient.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrantclient.Value_BoolValue:
		return kind.BoolValue
	case *qdrantclient.Value_StructValue:
		return valueMapToAny(kind.StructValue.GetFields())
	case *qdrantclient.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]any, len(values))
		for i, item := range values {
			out[i] = valueToAny(item)
		}
		return out
	default:
		return nil
	}
}

// pointIDString renders a Qdrant point id. The tool always writes UUID ids,
// but points written by other clients may carry numeric ids.
func pointIDString(id *qdrantclient.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return strconv.FormatUint(id.GetNum(), 10)
}
