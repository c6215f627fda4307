package sync_

import (
	"errors"
	"sync"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

type progress struct {
	Downloaded int64
	Expected   int64
}

func TestRWMutexed(t *testing.T) {
	assert := assert_.New(t)
	m := NewRWMutexed(progress{Expected: 100})
	assert.Equal(progress{Expected: 100}, m.Get())

	assert.NoError(m.Locked(func(p *progress) error {
		p.Downloaded = 50
		return nil
	}))
	assert.Equal(progress{Downloaded: 50, Expected: 100}, m.Get())

	// Get is a copy
	p := m.Get()
	p.Downloaded = 0
	assert.Equal(int64(50), m.Get().Downloaded)

	failure := errors.New("stop")
	assert.ErrorIs(m.Locked(func(p *progress) error { return failure }), failure)
}

func TestRWMutexedRace(t *testing.T) {
	assert := assert_.New(t)
	m := NewRWMutexed(progress{})
	start := NewEvent()
	wg := sync.WaitGroup{}

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start.Wait()
			for j := 0; j < 50; j++ {
				_ = m.Locked(func(p *progress) error {
					p.Downloaded++
					return nil
				})
			}
		}()
		go func() {
			defer wg.Done()
			<-start.Wait()
			for j := 0; j < 50; j++ {
				_ = m.Get()
			}
		}()
	}

	start.Set()
	wg.Wait()
	assert.Equal(int64(2500), m.Get().Downloaded)
}
