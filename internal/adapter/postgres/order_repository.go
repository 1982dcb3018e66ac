package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, bouquet_id, customer_name, sender_name, sender_phone,
	       payment_method, bouquet_price, payment_type, dp_amount, remaining_amount, total_paid,
	       pickup_date, pickup_time, notes, order_status, payment_status, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (order_number, bouquet_id, customer_name, sender_name, sender_phone,
		                    payment_method, bouquet_price, payment_type, dp_amount, remaining_amount,
		                    total_paid, pickup_date, pickup_time, notes, order_status, payment_status,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		order.OrderNumber, order.BouquetID, order.CustomerName, order.SenderName, order.SenderPhone,
		order.PaymentMethod, order.BouquetPrice, order.PaymentType, order.DPAmount, order.RemainingAmount,
		order.TotalPaid, order.PickupDate, order.PickupTime, order.Notes, order.OrderStatus, order.PaymentStatus,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Images {
		imageQuery := `
			INSERT INTO order_images (order_id, image_url, image_type, display_order)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err = tx.QueryRow(ctx, imageQuery,
			order.ID, order.Images[i].ImageURL, order.Images[i].ImageType, order.Images[i].DisplayOrder,
		).Scan(&order.Images[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order image: %w", err)
		}
		order.Images[i].OrderID = order.ID
	}

	// Initial audit row, system-attributed.
	logQuery := `
		INSERT INTO order_logs (order_id, admin_id, previous_status, new_status, notes, created_at)
		VALUES ($1, NULL, '', $2, 'Order created', $3)
	`
	if _, err := tx.Exec(ctx, logQuery, order.ID, order.OrderStatus, time.Now()); err != nil {
		return fmt.Errorf("failed to write order log: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.NewNotFoundError("order")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	imagesQuery := `
		SELECT id, order_id, image_url, image_type, display_order
		FROM order_images
		WHERE order_id = $1
		ORDER BY display_order ASC, id ASC
	`
	rows, err := r.db.Query(ctx, imagesQuery, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.OrderImage
		if err := rows.Scan(&img.ID, &img.OrderID, &img.ImageURL, &img.ImageType, &img.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan order image: %w", err)
		}
		order.Images = append(order.Images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order images: %w", err)
	}

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, q interfaces.ListOrdersQuery) ([]*domain.Order, int, error) {
	var (
		conds []string
		args  []any
	)

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("(customer_name ILIKE $%d OR order_number ILIKE $%d)", len(args), len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		conds = append(conds, fmt.Sprintf("order_status = $%d", len(args)))
	}
	if q.PaymentStatus != "" {
		args = append(args, q.PaymentStatus)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET order_status = $1, payment_status = $2, total_paid = $3, remaining_amount = $4, updated_at = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query,
		order.OrderStatus, order.PaymentStatus, order.TotalPaid, order.RemainingAmount, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("order")
	}
	return nil
}

// GenerateOrderNumber builds ORD-YYYYMMDD-NNNN from the count of orders
// created within the current UTC day. The count-then-insert pair is racy;
// Create maps the resulting unique violation to ErrDuplicateOrderNumber and
// the service retries with a fresh sequence.
func (r *orderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	now := time.Now().UTC()
	prefix := fmt.Sprintf("ORD-%s-", now.Format("20060102"))

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE order_number LIKE $1`, prefix+"%").Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func (r *orderRepository) AppendLog(ctx context.Context, log *domain.OrderLog) error {
	query := `
		INSERT INTO order_logs (order_id, admin_id, previous_status, new_status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		log.OrderID, log.AdminID, log.PreviousStatus, log.NewStatus, log.Notes, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("failed to write order log: %w", err)
	}
	return nil
}

func (r *orderRepository) GetLogs(ctx context.Context, orderID int) ([]*domain.OrderLog, error) {
	query := `
		SELECT id, order_id, admin_id, previous_status, new_status, notes, created_at
		FROM order_logs
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.OrderLog
	for rows.Next() {
		var log domain.OrderLog
		if err := rows.Scan(&log.ID, &log.OrderID, &log.AdminID, &log.PreviousStatus, &log.NewStatus, &log.Notes, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order log: %w", err)
		}
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order logs: %w", err)
	}

	return logs, nil
}

func scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.BouquetID, &order.CustomerName, &order.SenderName,
		&order.SenderPhone, &order.PaymentMethod, &order.BouquetPrice, &order.PaymentType,
		&order.DPAmount, &order.RemainingAmount, &order.TotalPaid, &order.PickupDate,
		&order.PickupTime, &order.Notes, &order.OrderStatus, &order.PaymentStatus,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
