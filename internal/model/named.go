package model

import (
	"encoding/json"
	"sort"
)

// Named maps server-defined names to descriptors. Keys are open-ended; a
// name the server did not send is simply absent.
type Named[T any] map[string]T

// Lookup returns the descriptor registered under name. Matching is exact and
// case-sensitive, and a nil map behaves as empty.
func (n Named[T]) Lookup(name string) (T, bool) {
	v, ok := n[name]
	return v, ok
}

// Names returns the registered names in sorted order.
func (n Named[T]) Names() []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type namedDescriptor[T any] interface {
	*T
	setName(string)
}

// decodeNamed decodes an object of descriptors keyed by name. Entries that
// fail to decode are dropped; the rest keep their key as Name.
func decodeNamed[T any, PT namedDescriptor[T]](raw json.RawMessage, into Named[T]) Named[T] {
	if isNull(raw) {
		return into
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return into
	}
	for name, entry := range entries {
		if _, exists := into[name]; exists {
			continue
		}
		v := optional[T](entry)
		if v == nil {
			continue
		}
		PT(v).setName(name)
		if into == nil {
			into = make(Named[T], len(entries))
		}
		into[name] = *v
	}
	return into
}

type metadataWire struct {
	Connections  Named[Connection]  `json:"connections,omitempty"`
	Interactions Named[Interaction] `json:"interactions,omitempty"`
}

// decodeMetadata reads connections and interactions from the metadata
// object, then fills in any names only present as top-level members.
func decodeMetadata(f fields) (Named[Connection], Named[Interaction]) {
	var connections Named[Connection]
	var interactions Named[Interaction]

	if meta := f["metadata"]; !isNull(meta) {
		var m fields
		if err := json.Unmarshal(meta, &m); err == nil {
			connections = decodeNamed[Connection](m["connections"], connections)
			interactions = decodeNamed[Interaction](m["interactions"], interactions)
		}
	}

	connections = decodeNamed[Connection](f["connections"], connections)
	interactions = decodeNamed[Interaction](f["interactions"], interactions)
	return connections, interactions
}

func encodeMetadata(connections Named[Connection], interactions Named[Interaction]) *metadataWire {
	if len(connections) == 0 && len(interactions) == 0 {
		return nil
	}
	return &metadataWire{Connections: connections, Interactions: interactions}
}
