package diag

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger(t *testing.T) {
	l := New()
	l.Unresolved("spase://SMWG/Person/Nobody", "/corpus/SMWG/Person/Nobody.xml")
	l.Unresolved("spase://SMWG/Person/Nobody", "/corpus/SMWG/Person/Nobody.xml")
	l.Inconsistent("2020-01-01T00:00:00", "2021-03-15T00:00:00")
	l.Network("https://doi.org/10.1234/x", errors.New("timeout"))

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"spase://SMWG/Person/Nobody"}, l.Targets(UnresolvedReference))
	assert.Len(t, l.Filter(NetworkFailure), 1)
	assert.Equal(t, "network-error: https://doi.org/10.1234/x (timeout)", l.Filter(NetworkFailure)[0].String())
}

func TestNilLedger(t *testing.T) {
	var l *Ledger
	l.Unresolved("x", "y")
	assert.Zero(t, l.Len())
	assert.Nil(t, l.Entries())
}

func TestLedgerConcurrentAdds(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Malformed("field", string(rune('a'+i%26)))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 26, l.Len())
}
