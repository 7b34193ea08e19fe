package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// NotificationController serves the websocket that booking events are
// broadcast on, plus a manual broadcast for admins.
type NotificationController struct {
	logger   logger.Logger
	melody   *melody.Melody
	notifier notification.Service
}

func NewNotificationController(m *melody.Melody, log logger.Logger) *NotificationController {
	if log == nil {
		log = logger.Nop{}
	}
	nc := &NotificationController{
		logger:   log,
		melody:   m,
		notifier: notification.NewMelodyService(m),
	}
	m.HandleConnect(func(s *melody.Session) {
		nc.logger.Debug("websocket connected: %s", s.Request.RemoteAddr)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		nc.logger.Debug("websocket disconnected: %s", s.Request.RemoteAddr)
	})
	return nc
}

func (nc *NotificationController) HandleWS(c *gin.Context) {
	if err := nc.melody.HandleRequest(c.Writer, c.Request); err != nil {
		nc.logger.Warn("websocket upgrade: %v", err)
	}
}

type broadcastRequest struct {
	Message string `json:"message" binding:"required"`
}

func (nc *NotificationController) NotifyAll(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}
	if err := nc.notifier.SendMessage(req.Message); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Broadcast sent."})
}
