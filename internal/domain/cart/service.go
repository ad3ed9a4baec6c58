// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/artmart-checkout/internal/config"
)

// ErrItemNotFound is returned when a cart item id does not exist in the cart
var ErrItemNotFound = errors.New("cart item not found")

// Service handles cart business logic
type Service struct {
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddItemRequest represents an add to cart request. The price is the
// upstream quote for the framing configuration, in minor currency units.
type AddItemRequest struct {
	ArtworkID  int64     `json:"artworkId" binding:"required"`
	Price      int64     `json:"price" binding:"required"`
	PrintSize  PrintSize `json:"printSize" binding:"required"`
	FrameStyle string    `json:"frameStyle" binding:"required"`
	FrameWidth int       `json:"frameWidth" binding:"required"`
	MatWidth   int       `json:"matWidth"`
	MatColor   string    `json:"matColor"`
}

// GetCart retrieves the cart for a session, returning an empty cart
// when none has been stored yet.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	data, err := s.redisClient.Get(ctx, s.cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(data), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &sessionCart, nil
}

// AddItem validates the framing configuration and appends it to the cart
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*SessionCart, error) {
	item := CartItem{
		CartItemID: uuid.NewString(),
		ArtworkID:  req.ArtworkID,
		Price:      req.Price,
		PrintSize:  req.PrintSize,
		FrameStyle: req.FrameStyle,
		FrameWidth: req.FrameWidth,
		MatWidth:   req.MatWidth,
		MatColor:   req.MatColor,
		AddedAt:    time.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	sessionCart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sessionCart.Items = append(sessionCart.Items, item)
	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}
	return sessionCart, nil
}

// RemoveItem deletes one item from the cart by its id
func (s *Service) RemoveItem(ctx context.Context, sessionID, cartItemID string) (*SessionCart, error) {
	sessionCart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := sessionCart.Items[:0]
	found := false
	for _, item := range sessionCart.Items {
		if item.CartItemID == cartItemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, ErrItemNotFound
	}

	sessionCart.Items = items
	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}
	return sessionCart, nil
}

// Clear removes the whole cart for a session
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.redisClient.Del(ctx, s.cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, sessionCart *SessionCart) error {
	sessionCart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.cartKey(sessionCart.SessionID), data, s.config.Redis.CartTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

func (s *Service) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
