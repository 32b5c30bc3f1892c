package audit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rootbits-api/internal/db/dbtest"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

func TestDispatcherPersistsEvents(t *testing.T) {
	db := dbtest.New(t)
	d := NewDispatcher(New(db), nil)

	d.Dispatch(Event{UserID: "u1", Action: "client_deleted", Entity: "client", EntityID: "c1", Metadata: map[string]string{"nome": "Ana"}})
	d.Dispatch(Event{Action: "user_created", Entity: "user"})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Order("action").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, "client_deleted", logs[0].Action)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, "u1", *logs[0].UserID)
	assert.JSONEq(t, `{"nome":"Ana"}`, logs[0].Metadata)

	assert.Nil(t, logs[1].UserID)
	assert.Nil(t, logs[1].EntityID)
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	db := dbtest.New(t)
	d := NewDispatcher(New(db), nil)
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "late", Entity: "client"})
		d.Close()
	})

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDispatchRacingCloseDoesNotPanic(t *testing.T) {
	db := dbtest.New(t)
	d := NewDispatcher(New(db), nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				d.Dispatch(Event{Action: "burst", Entity: "ticket"})
			}
		}()
	}
	d.Close()
	wg.Wait()
}
