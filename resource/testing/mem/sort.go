package mem

import (
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// sortableItems is an item slice implementing sort.Interface
type sortableItems struct {
	sort  query.Sort
	items []*resource.Item
}

func (s sortableItems) Len() int {
	return len(s.items)
}

func (s sortableItems) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
}

func (s sortableItems) Less(i, j int) bool {
	for _, field := range s.sort {
		c := query.CompareValues(s.items[i].Payload[field.Name], s.items[j].Payload[field.Name])
		if field.Reversed {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
	}
	return false
}
