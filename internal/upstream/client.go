package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ordering-next/internal/models"

	"github.com/shopspring/decimal"
)

// Client 订餐后端 REST 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建上游客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CartMutation 购物车增删请求体
type CartMutation struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	UserID   uint   `json:"user_id"`
}

// OrderLine 下单明细行
type OrderLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// OrderRequest 下单请求体
type OrderRequest struct {
	UserID      uint         `json:"user_id"`
	Lines       []OrderLine  `json:"lines"`
	PromoCode   string       `json:"promo_code,omitempty"`
	Subtotal    models.Money `json:"subtotal"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Discount    models.Money `json:"discount"`
	Total       models.Money `json:"total"`
}

type itemPayload struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	Category string       `json:"category"`
	Photo    string       `json:"photo"`
}

type catalogResponse struct {
	Success bool          `json:"success"`
	Data    []itemPayload `json:"data"`
}

type promoResponse struct {
	Success  bool            `json:"success"`
	Discount decimal.Decimal `json:"discount"`
	Message  string          `json:"message"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// FetchItems 拉取商品目录
func (c *Client) FetchItems(ctx context.Context) ([]models.Item, error) {
	var resp catalogResponse
	if err := c.do(ctx, http.MethodGet, "/catalog/items", "", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: catalog fetch not successful", ErrUnexpectedStatus)
	}
	items := make([]models.Item, 0, len(resp.Data))
	for _, p := range resp.Data {
		items = append(items, models.Item{
			ID:        p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Category:  p.Category,
			PhotoRef:  p.Photo,
		})
	}
	return items, nil
}

// AddCartItem 上报购物车新增
func (c *Client) AddCartItem(ctx context.Context, token string, m CartMutation) error {
	return c.do(ctx, http.MethodPost, "/cart/add", token, m, nil)
}

// RemoveCartItem 上报购物车移除
func (c *Client) RemoveCartItem(ctx context.Context, token string, m CartMutation) error {
	return c.do(ctx, http.MethodDelete, "/cart/remove", token, m, nil)
}

// ValidatePromoCode 校验优惠码并返回折扣百分比
func (c *Client) ValidatePromoCode(ctx context.Context, code string) (decimal.Decimal, error) {
	var resp promoResponse
	body := map[string]string{"code": code}
	if err := c.do(ctx, http.MethodPost, "/promocode/validate", "", body, &resp); err != nil {
		return decimal.Zero, err
	}
	if !resp.Success {
		msg := strings.TrimSpace(resp.Message)
		if msg == "" {
			msg = "promo code rejected"
		}
		return decimal.Zero, fmt.Errorf("%w: %s", ErrValidationRejected, msg)
	}
	return resp.Discount, nil
}

// CreateOrder 提交订单
func (c *Client) CreateOrder(ctx context.Context, token string, order OrderRequest) error {
	return c.do(ctx, http.MethodPost, "/orders", token, order, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request failed: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response failed: %w", err)
		}
		return nil
	}

	detail := readErrorDetail(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return wrapStatusError(ErrUnauthorized, detail)
	case http.StatusNotFound:
		return wrapStatusError(ErrNotFound, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return wrapStatusError(ErrValidationRejected, detail)
	default:
		if detail == "" {
			detail = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return wrapStatusError(ErrUnexpectedStatus, detail)
	}
}

func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Detail)
}

func wrapStatusError(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
