package companion

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a companion session, used by the simplr-companion tool.
type Client struct {
	conn *websocket.Conn
}

// Dial opens a session to url and says hello as name.
func Dial(ctx context.Context, url, name string) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: writeWait}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	c := &Client{conn: conn}
	if _, err := c.roundTrip(Message{Type: TypeHello, Name: name}); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// SendSteps adds count steps taken now and returns the watch's new total.
func (c *Client) SendSteps(count int) (int, error) {
	return c.roundTrip(Message{Type: TypeSteps, Count: count})
}

// SendStepsAt adds count steps taken at t.
func (c *Client) SendStepsAt(count int, t time.Time) (int, error) {
	return c.roundTrip(Message{Type: TypeSteps, Count: count, At: &t})
}

// SendTotal replaces today's total.
func (c *Client) SendTotal(count int) (int, error) {
	return c.roundTrip(Message{Type: TypeStepsTotal, Count: count})
}

// Close says goodbye and closes the session.
func (c *Client) Close() error {
	_, err := c.roundTrip(Message{Type: TypeBye})
	closeErr := c.conn.Close()
	if err != nil {
		return err
	}
	return closeErr
}

func (c *Client) roundTrip(m Message) (int, error) {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(m); err != nil {
		return 0, fmt.Errorf("failed to send %s: %w", m.Type, err)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	var reply Message
	if err := c.conn.ReadJSON(&reply); err != nil {
		return 0, fmt.Errorf("failed to read reply to %s: %w", m.Type, err)
	}
	if reply.Type == TypeError {
		return 0, fmt.Errorf("watch rejected %s: %s", m.Type, reply.Error)
	}
	if reply.StepsToday == nil {
		return 0, nil
	}
	return *reply.StepsToday, nil
}
