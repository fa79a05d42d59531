package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinCyclesThroughInstances(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:1", "http://b:2", "http://c:3"})

	assert.Equal(t, "http://a:1", rr.Next())
	assert.Equal(t, "http://b:2", rr.Next())
	assert.Equal(t, "http://c:3", rr.Next())
	assert.Equal(t, "http://a:1", rr.Next())
}

func TestRoundRobinEmptyPoolUsesFallback(t *testing.T) {
	rr := NewRoundRobin(nil)

	assert.Equal(t, "http://localhost:8080", rr.Next())
}

func TestRoundRobinRemoveInstance(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:1", "http://b:2"})

	rr.Next()
	rr.Next()
	rr.RemoveInstance("http://b:2")

	assert.Equal(t, []string{"http://a:1"}, rr.Instances())
	assert.Equal(t, "http://a:1", rr.Next())
	assert.Equal(t, "http://a:1", rr.Next())
}

func TestRoundRobinAddInstance(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:1"})

	rr.AddInstance("http://b:2")

	stats := rr.Stats()
	assert.Equal(t, 2, stats["instance_count"])
}
