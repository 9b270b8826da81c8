package server

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skeldnet/skeld/internal/core/geometry"
)

// Zone is a named map area where a task can be worked on. Areas are convex
// polygons; concave rooms are modeled as several zones.
type Zone struct {
	Name   string
	Area   geometry.Polygon
	TaskID uuid.UUID
}

// World holds the static map geometry: the outer bounds, the task zones
// and the vents. It is immutable once the server starts, so queries need
// no locking.
type World struct {
	bounds geometry.Polygon
	zones  []Zone
	vents  []geometry.Circle
}

// NewWorld creates a world with the given convex outer bounds.
func NewWorld(bounds geometry.Polygon) *World {
	return &World{bounds: bounds}
}

// AddZone registers a task zone.
func (w *World) AddZone(zone Zone) {
	w.zones = append(w.zones, zone)
}

// AddVent registers a vent opening.
func (w *World) AddVent(vent geometry.Circle) {
	w.vents = append(w.vents, vent)
}

// InsideBounds reports whether the player is fully inside the map.
func (w *World) InsideBounds(player geometry.Circle) (bool, error) {
	inside, err := geometry.Contain(w.bounds, player)
	if err != nil {
		return false, errors.Wrap(err, "bounds check")
	}
	return inside, nil
}

// ZoneAt returns the first zone the player overlaps.
func (w *World) ZoneAt(player geometry.Circle) (Zone, bool, error) {
	for _, zone := range w.zones {
		hit, err := geometry.Collide(zone.Area, player)
		if err != nil {
			return Zone{}, false, errors.Wrapf(err, "zone %q", zone.Name)
		}
		if hit {
			return zone, true, nil
		}
	}
	return Zone{}, false, nil
}

// CanInteract reports whether the player stands in the zone belonging to
// the given task.
func (w *World) CanInteract(player geometry.Circle, taskID uuid.UUID) (bool, error) {
	zone, ok, err := w.ZoneAt(player)
	if err != nil || !ok {
		return false, err
	}
	return zone.TaskID == taskID, nil
}

// AtVent reports whether the player touches any vent opening.
func (w *World) AtVent(player geometry.Circle) (bool, error) {
	for i, vent := range w.vents {
		hit, err := geometry.Collide(vent, player)
		if err != nil {
			return false, errors.Wrapf(err, "vent %d", i)
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}
