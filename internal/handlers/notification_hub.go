// internal/handlers/notification_hub.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ain-oman-crm/config"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GlobalHub is the single notification hub for the whole application.
var GlobalHub = NewHub()

// NotificationEvent is what goes over the wire to dashboards.
type NotificationEvent struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// Hub fans lease and cheque events out to every connected dashboard.
type Hub struct {
	clients    map[uint]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()
			slog.Info("Notification client registered", "userID", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("Notification client unregistered", "userID", client.userID)

		case messageData := <-h.broadcast:
			h.mu.Lock()
			for userID, client := range h.clients {
				select {
				case client.send <- messageData:
				default:
					// Slow consumer: drop it rather than block the hub.
					close(client.send)
					delete(h.clients, userID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish persists the notification for the acting user and pushes the event
// to every connected dashboard.
func (h *Hub) Publish(userID uint, event NotificationEvent) {
	row := models.Notification{
		UserID: userID,
		Kind:   event.Kind,
		Title:  event.Title,
		Body:   event.Body,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		slog.Error("Failed to persist notification", "error", err, "kind", event.Kind)
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal notification event", "error", err)
		return
	}
	h.broadcast <- data
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		// Dashboards only listen; inbound frames just keep the connection alive.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// NotificationsWSEndpoint upgrades the connection and attaches the dashboard
// to the hub.
func NotificationsWSEndpoint(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "error", err)
		return
	}

	client := &Client{hub: GlobalHub, conn: conn, send: make(chan []byte, 16), userID: userID}
	GlobalHub.register <- client

	go client.writePump()
	go client.readPump()
}

// ListNotificationsHandler returns the caller's recent notifications.
func ListNotificationsHandler(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var notifications []models.Notification
	if err := config.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// MarkNotificationReadHandler flags one notification as read.
func MarkNotificationReadHandler(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	result := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "الإشعار غير موجود"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم"})
}

// notifyLeaseCreated announces a freshly booked contract.
func notifyLeaseCreated(c *gin.Context, contract *models.LeaseContract) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	GlobalHub.Publish(userID, NotificationEvent{
		Kind:  models.NotifyLeaseCreated,
		Title: "عقد إيجار جديد",
		Body:  fmt.Sprintf("تم إنشاء العقد %s", contract.ContractNumber),
	})
}

// notifyChequeReturned announces a bounced cheque.
func notifyChequeReturned(c *gin.Context, instrument *models.PaymentInstrument) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	GlobalHub.Publish(userID, NotificationEvent{
		Kind:  models.NotifyChequeReturned,
		Title: "شيك مرتجع",
		Body:  fmt.Sprintf("الشيك %s مرتجع من البنك", instrument.Number),
	})
}
