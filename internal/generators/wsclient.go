package generators

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	conn *websocket.Conn
	url  string
	auth string
	done chan struct{}
}

func NewWSClient(url string, auth string) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{
		"Authorization": {auth},
	})

	if err != nil {
		return nil, err
	}

	client := &WSClient{
		conn: conn,
		url:  url,
		auth: auth,
		done: make(chan struct{}),
	}

	return client, nil
}

func (c *WSClient) reconnect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, http.Header{
		"Authorization": {c.auth},
	})

	if err != nil {
		return err
	}

	c.conn = conn

	return nil
}

func (c *WSClient) SendMessage(message string) error {
	err := c.conn.WriteMessage(websocket.TextMessage, []byte(message))
	if err != nil {
		if err := c.reconnect(); err != nil {
			return err
		}

		// Retry once after reconnecting
		err = c.conn.WriteMessage(websocket.TextMessage, []byte(message))
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *WSClient) ReadMessages(messageChan chan<- []byte) {
	defer close(c.done)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			close(messageChan)
			return
		}
		messageChan <- message
	}
}

func (c *WSClient) Close() error {
	err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		return err
	}
	select {
	case <-c.done:
	case <-time.After(time.Second):
	}
	return c.conn.Close()
}
