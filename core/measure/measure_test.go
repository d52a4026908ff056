package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAddAndSort(t *testing.T) {
	s := Set{}
	s.Add("A", 20)
	s.Add("A", 10)
	s.Add("B", 5)
	s.Sort()
	assert.Equal(t, []float64{10, 20}, s["A"])
	assert.Equal(t, []float64{5}, s["B"])
	assert.Equal(t, 3, s.Len())
}

func TestSetPutOverwrites(t *testing.T) {
	s := Set{}
	s.Put("bus_1", 100)
	s.Put("bus_1", 120)
	assert.Equal(t, []float64{120}, s["bus_1"])
}

func TestIDsSorted(t *testing.T) {
	s := Set{"b": {1}, "a": {2}, "c": {3}}
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestUnavailable(t *testing.T) {
	e := Unavailable()
	assert.False(t, e.OK)
	assert.Equal(t, 0, e.Set.Len())
}
