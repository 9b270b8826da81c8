package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skeldnet/skeld/internal/core/geometry"
	"github.com/skeldnet/skeld/internal/core/tasks"
)

func square(minX, minY, maxX, maxY float64) geometry.Polygon {
	return geometry.NewPolygon(
		geometry.V(minX, minY), geometry.V(maxX, minY),
		geometry.V(maxX, maxY), geometry.V(minX, maxY),
	)
}

func TestWorld_InsideBounds(t *testing.T) {
	world := NewWorld(square(-50, -50, 50, 50))

	inside, err := world.InsideBounds(geometry.NewCircle(geometry.V(0, 0), 1))
	require.NoError(t, err)
	require.True(t, inside)

	// A player half over the edge is not fully inside.
	inside, err = world.InsideBounds(geometry.NewCircle(geometry.V(50, 0), 1))
	require.NoError(t, err)
	require.False(t, inside)

	inside, err = world.InsideBounds(geometry.NewCircle(geometry.V(80, 80), 1))
	require.NoError(t, err)
	require.False(t, inside)
}

func TestWorld_ZoneAt(t *testing.T) {
	wiringID := tasks.New("fix wiring", &tasks.Upload{}).ID()
	scanID := tasks.New("submit scan", &tasks.Upload{}).ID()

	world := NewWorld(square(-50, -50, 50, 50))
	world.AddZone(Zone{Name: "electrical", Area: square(10, 10, 20, 20), TaskID: wiringID})
	world.AddZone(Zone{Name: "medbay", Area: square(-20, -20, -10, -10), TaskID: scanID})

	zone, ok, err := world.ZoneAt(geometry.NewCircle(geometry.V(15, 15), 1))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "electrical", zone.Name)

	zone, ok, err = world.ZoneAt(geometry.NewCircle(geometry.V(-15, -15), 1))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "medbay", zone.Name)

	_, ok, err = world.ZoneAt(geometry.NewCircle(geometry.V(0, 40), 1))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWorld_CanInteract(t *testing.T) {
	taskID := tasks.New("fix wiring", &tasks.Upload{}).ID()

	world := NewWorld(square(-50, -50, 50, 50))
	world.AddZone(Zone{Name: "electrical", Area: square(10, 10, 20, 20), TaskID: taskID})

	inZone := geometry.NewCircle(geometry.V(15, 15), 1)

	ok, err := world.CanInteract(inZone, taskID)
	require.NoError(t, err)
	require.True(t, ok)

	// Right zone, wrong task.
	ok, err = world.CanInteract(inZone, uuid.New())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = world.CanInteract(geometry.NewCircle(geometry.V(-15, -15), 1), taskID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWorld_AtVent(t *testing.T) {
	world := NewWorld(square(-50, -50, 50, 50))
	world.AddVent(geometry.NewCircle(geometry.V(30, 30), 2))

	at, err := world.AtVent(geometry.NewCircle(geometry.V(31, 30), 1))
	require.NoError(t, err)
	require.True(t, at)

	at, err = world.AtVent(geometry.NewCircle(geometry.V(0, 0), 1))
	require.NoError(t, err)
	require.False(t, at)
}

func TestWorld_DegenerateZoneSurfacesError(t *testing.T) {
	world := NewWorld(square(-50, -50, 50, 50))
	world.AddZone(Zone{Name: "broken", Area: geometry.NewPolygon()})

	_, _, err := world.ZoneAt(geometry.NewCircle(geometry.V(0, 0), 1))
	require.ErrorIs(t, err, geometry.ErrInvalidGeometry)
}
