package entity

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestTableSessionSchema(t *testing.T) {
	s, err := schema.Parse(&TableSession{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	// The denormalized display name is a plain column; the struct maps to
	// table_sessions through the default naming strategy.
	assert.Equal(t, "table_sessions", s.Table)

	field := s.LookUpField("TableName")
	require.NotNil(t, field)
	assert.Equal(t, "table_name", field.DBName)
}

func TestTableSessionClone(t *testing.T) {
	now := time.Now()
	paused := now.Add(10 * time.Minute)
	session := &TableSession{
		ID:        uuid.New(),
		TableID:   uuid.New(),
		TableName: "Table 7",
		StartedAt: now,
		PausedAt:  &paused,
		FnbItems: []SessionFnbItem{
			{ID: uuid.New(), Name: "Iced Tea", Qty: 2, Price: 15000},
		},
	}

	cp := session.Clone()
	assert.Equal(t, session.TableName, cp.TableName)

	*cp.PausedAt = paused.Add(time.Hour)
	cp.FnbItems[0].Qty = 9
	assert.Equal(t, paused, *session.PausedAt)
	assert.Equal(t, 2, session.FnbItems[0].Qty)
}
