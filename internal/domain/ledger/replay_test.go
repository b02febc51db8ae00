package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Licoreria-api/internal/domain/entity"
)

func mov(id int64, kind string, qty, before int64, at time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID: id, StockItemID: 1, Kind: kind, Quantity: qty,
		StockBefore: before, StockAfter: before + qty, CreatedAt: at,
	}
}

func TestReplay_ReconstruyeStock(t *testing.T) {
	t0 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	// desordenados a propósito; los dos primeros comparten timestamp
	movs := []*entity.StockMovement{
		mov(3, entity.MovementKindOut, -7, 10, t0.Add(time.Hour)),
		mov(2, entity.MovementKindIn, 6, 4, t0),
		mov(1, entity.MovementKindIn, 4, 0, t0),
		mov(4, entity.MovementKindAdjustment, -3, 3, t0.Add(2*time.Hour)),
	}
	got, err := Replay(0, movs)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
	assert.Equal(t, got, Sum(movs))
	assert.Equal(t, int64(3), movs[0].ID, "Replay no debe reordenar el slice del llamador")
}

func TestReplay_DetectaHuecos(t *testing.T) {
	t0 := time.Now()
	movs := []*entity.StockMovement{
		mov(1, entity.MovementKindIn, 10, 0, t0),
		mov(2, entity.MovementKindOut, -2, 9, t0.Add(time.Minute)),
	}
	_, err := Replay(0, movs)
	assert.Error(t, err)
}

func TestReplay_DetectaAritmeticaInvalida(t *testing.T) {
	m := mov(1, entity.MovementKindIn, 10, 0, time.Now())
	m.StockAfter = 11
	_, err := Replay(0, []*entity.StockMovement{m})
	assert.Error(t, err)
}

func TestStockMovementValidate_Signos(t *testing.T) {
	now := time.Now()
	assert.Error(t, mov(1, entity.MovementKindIn, -1, 5, now).Validate())
	assert.Error(t, mov(1, entity.MovementKindOut, 1, 5, now).Validate())
	assert.Error(t, mov(1, entity.MovementKindAdjustment, 0, 5, now).Validate())
	assert.Error(t, mov(1, entity.MovementKindOut, -6, 5, now).Validate(), "no puede quedar negativo")
	assert.NoError(t, mov(1, entity.MovementKindAdjustment, -5, 5, now).Validate())
}
