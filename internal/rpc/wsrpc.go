package rpc

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/iqbalbaharum/pool-delegator/internal/config"
	"github.com/iqbalbaharum/pool-delegator/internal/generators"
)

type SignatureNotification struct {
	Signature string
	Slot      uint64
	Err       interface{}
}

// A signature either confirms within the blockhash validity window or never
// will; no point holding the subscription open past it.
const confirmTimeout = 90 * time.Second

// WsRpc tracks broadcast signatures over the node's websocket endpoint so
// submissions can be confirmed without polling. Each subscription runs on
// its own short-lived connection; the node drops signature subscriptions
// after one notification anyway.
type WsRpc struct {
	url string
}

func NewWsRpc() (*WsRpc, error) {
	if config.RpcWsUrl == "" {
		return nil, errors.New("websocket RPC url is empty")
	}

	return &WsRpc{url: config.RpcWsUrl}, nil
}

// SubscribeSignature registers a signatureSubscribe for one broadcast
// signature and forwards the confirmation notification to sigChan. sigChan is
// closed once the subscription ends, whether or not a notification arrived,
// so receivers never wait on a dead subscription.
func (w *WsRpc) SubscribeSignature(signature string, sigChan chan<- SignatureNotification) {
	subscriptionRequest := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "signatureSubscribe",
		"params": []interface{}{
			signature,
			map[string]interface{}{
				"commitment": "confirmed",
			},
		},
	}

	requestData, err := json.Marshal(subscriptionRequest)
	if err != nil {
		log.Println("Failed to marshal subscription request:", err)
		close(sigChan)
		return
	}

	wsClient, err := generators.NewWSClient(w.url, "")
	if err != nil {
		log.Println("Failed to dial websocket endpoint:", err)
		close(sigChan)
		return
	}

	if err := wsClient.SendMessage(string(requestData)); err != nil {
		log.Println("Failed to send subscription request:", err)
		wsClient.Close()
		close(sigChan)
		return
	}

	go func() {
		defer close(sigChan)
		defer wsClient.Close()

		messageChan := make(chan []byte, 8)

		go wsClient.ReadMessages(messageChan)

		deadline := time.After(confirmTimeout)

		for {
			select {
			case <-deadline:
				return
			case message, ok := <-messageChan:
				if !ok {
					return
				}

				var response map[string]interface{}
				if err := json.Unmarshal(message, &response); err != nil {
					log.Println("Failed to unmarshal message:", err)
					continue
				}

				if response["method"] != "signatureNotification" {
					continue
				}

				params, ok := response["params"].(map[string]interface{})
				if !ok {
					continue
				}

				result, ok := params["result"].(map[string]interface{})
				if !ok {
					continue
				}

				notification := SignatureNotification{
					Signature: signature,
				}

				if context, ok := result["context"].(map[string]interface{}); ok {
					if slot, ok := context["slot"].(float64); ok {
						notification.Slot = uint64(slot)
					}
				}

				if value, ok := result["value"].(map[string]interface{}); ok {
					notification.Err = value["err"]
				}

				sigChan <- notification
				return
			}
		}
	}()
}
