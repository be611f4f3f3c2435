package ws

// Hub per sesi wizard:
// menyimpan koneksi client, menerima event dari controller,
// lalu menyiarkannya ke semua client sesi tersebut.

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/wizard"
)

// Client mewakili koneksi WebSocket
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// NewClient membuat client dengan antrean kirim berkapasitas 256 pesan.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{Conn: conn, Send: make(chan []byte, 256)}
}

// Hub mengelola koneksi client satu sesi.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	done     chan struct{}
	stopOnce sync.Once
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.log.Debug("client registered", zap.Int("clients", len(h.clients)))
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.log.Debug("client unregistered", zap.Int("clients", len(h.clients)))
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		case <-h.done:
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// Stop menghentikan Run dan menutup semua client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Join mendaftarkan client; false bila hub sudah berhenti.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave melepas client.
func (h *Hub) Leave(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// Notify menyiarkan event wizard. Tidak pernah memblokir: bila antrean
// penuh, event dibuang dan dicatat.
func (h *Hub) Notify(e wizard.Event) {
	message, err := json.Marshal(e)
	if err != nil {
		h.log.Error("gagal serialisasi event", zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- message:
	case <-h.done:
	default:
		h.log.Warn("antrean broadcast penuh, event dibuang", zap.String("type", string(e.Type)))
	}
}
