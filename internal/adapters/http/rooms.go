package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/app"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/catalog"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

func (d Deps) handleCreateRoom(c *gin.Context) {
	var req struct {
		Name domain.RoomName `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name required"})
		return
	}
	user := currentUser(c)

	// Codes are random; retry until one is free.
	for {
		room, err := domain.NewRoom(req.Name, user.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		err = d.Catalog.CreateRoom(c.Request.Context(), room)
		if errors.Is(err, catalog.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("create room")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"roomCode": room.Code,
			"name":     room.Name,
			"isAdmin":  true,
		})
		return
	}
}

func (d Deps) handleJoinRoom(c *gin.Context) {
	var req struct {
		RoomCode domain.RoomCode `json:"roomCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "roomCode required"})
		return
	}
	user := currentUser(c)

	room, err := d.Catalog.GetRoom(c.Request.Context(), req.RoomCode)
	if err != nil || !room.Active {
		c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roomCode": room.Code,
		"name":     room.Name,
		"isAdmin":  room.AdminID == user.ID,
	})
}

// handleLeaveRoom departs the caller's live connections from the room
// through the coordinator, so remaining members see the departure.
// Leaving with no live connection in the room is still a success.
func (d Deps) handleLeaveRoom(c *gin.Context) {
	var req struct {
		RoomCode domain.RoomCode `json:"roomCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "roomCode required"})
		return
	}
	user := currentUser(c)

	err := d.Coord.LeaveRoom(c.Request.Context(), user.ID, req.RoomCode)
	switch {
	case errors.Is(err, app.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Left room"})
	}
}

// handleDismissRoom shares the coordinator's dismissal path so live
// members are notified and evicted, not just the record deleted.
func (d Deps) handleDismissRoom(c *gin.Context) {
	var req struct {
		RoomCode domain.RoomCode `json:"roomCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "roomCode required"})
		return
	}
	user := currentUser(c)

	err := d.Coord.DismissRoom(c.Request.Context(), user.ID, req.RoomCode)
	switch {
	case errors.Is(err, app.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
	case errors.Is(err, app.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Only admin can dismiss"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Room dismissed"})
	}
}
