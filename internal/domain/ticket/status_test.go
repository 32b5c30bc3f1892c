package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

func TestApplyStatusStampsOnlyOnEntry(t *testing.T) {
	tk := &models.Ticket{Status: string(StatusAberto)}
	first := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	assert.False(t, ApplyStatus(tk, StatusEmAndamento, first))
	assert.Nil(t, tk.DataResolucao)

	assert.True(t, ApplyStatus(tk, StatusResolvido, first))
	require.NotNil(t, tk.DataResolucao)
	assert.Equal(t, first, *tk.DataResolucao)

	// re-saving and moving inside the pair keep the first stamp
	assert.False(t, ApplyStatus(tk, StatusResolvido, first.Add(time.Hour)))
	assert.False(t, ApplyStatus(tk, StatusFechado, first.Add(2*time.Hour)))
	assert.Equal(t, first, *tk.DataResolucao)
	assert.Equal(t, string(StatusFechado), tk.Status)

	// reopening and resolving again stamps anew
	ApplyStatus(tk, StatusAberto, first.Add(3*time.Hour))
	assert.True(t, ApplyStatus(tk, StatusFechado, first.Add(4*time.Hour)))
	assert.Equal(t, first.Add(4*time.Hour), *tk.DataResolucao)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Statuses, "aguardando_cliente"))
	assert.True(t, Valid(Prioridades, DefaultPrioridade))
	assert.True(t, Valid(Tipos, DefaultTipo))
	assert.False(t, Valid(Tipos, "bug"))
}
