package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Product queries.
const (
	queryCreateProduct = `
		INSERT INTO products (
			name, description, price, stock_quantity,
			availability_type, is_active, category_id, image_urls,
			preorder_available_date, created_at, updated_at
		) VALUES (
			@name, @description, @price, @stock_quantity,
			@availability_type, @is_active, @category_id, @image_urls,
			@preorder_available_date, now(), now()
		)
		RETURNING id, created_at, updated_at`

	queryGetProduct = `
		SELECT id, name, COALESCE(description, ''), price, stock_quantity,
			availability_type, is_active, category_id, COALESCE(image_urls, '{}'),
			preorder_available_date, created_at, updated_at
		FROM products
		WHERE id = $1`

	queryUpdateProduct = `
		UPDATE products SET
			name = @name,
			description = @description,
			price = @price,
			stock_quantity = @stock_quantity,
			availability_type = @availability_type,
			is_active = @is_active,
			category_id = @category_id,
			image_urls = @image_urls,
			preorder_available_date = @preorder_available_date,
			updated_at = now()
		WHERE id = @id
		RETURNING updated_at`

	queryDeleteProduct = `DELETE FROM products WHERE id = $1`

	queryListFeaturedProducts = `
		SELECT id, name, price, COALESCE(image_urls[1], ''), availability_type
		FROM products
		WHERE is_active = TRUE AND availability_type = 'in_stock'
		ORDER BY created_at DESC
		LIMIT $1`
)

// Category queries.
const (
	queryCreateCategory = `
		INSERT INTO categories (name, created_at)
		VALUES ($1, now())
		RETURNING id, created_at`

	queryGetCategory = `
		SELECT c.id, c.name, c.created_at,
			(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count
		FROM categories c
		WHERE c.id = $1`

	queryListCategories = `
		SELECT c.id, c.name, c.created_at,
			(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count
		FROM categories c
		ORDER BY c.name`

	queryUpdateCategory = `
		UPDATE categories SET name = $2 WHERE id = $1`

	queryCountCategoryProducts = `
		SELECT COUNT(*) FROM products WHERE category_id = $1`

	queryDeleteCategory = `DELETE FROM categories WHERE id = $1`
)

// Favorite queries.
const (
	queryAddFavorite = `
		INSERT INTO favorites (user_id, product_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, product_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, created_at`

	queryRemoveFavorite = `
		DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`

	queryListFavoriteProductIDs = `
		SELECT product_id FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	queryListFavoriteProducts = `
		SELECT p.id, p.name, p.price, COALESCE(p.image_urls[1], ''), p.availability_type
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`
)

// Order queries.
const (
	queryCreateOrder = `
		INSERT INTO orders (user_id, status, total_price, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at`

	queryCreateOrderItem = `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)`

	queryReserveStock = `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2`

	queryGetOrder = `
		SELECT id, user_id, status, total_price, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2`

	queryListOrders = `
		SELECT id, user_id, status, total_price, created_at
		FROM orders
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`

	queryCountOrders = `
		SELECT COUNT(*)
		FROM orders
		WHERE user_id = $1 AND ($2 = '' OR status = $2)`

	queryListOrderItems = `
		SELECT order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`

	queryUpdateOrderStatus = `
		UPDATE orders SET status = $2 WHERE id = $1`
)

// Catalog metadata queries.
const (
	queryCatalogMetaBounds = `
		SELECT COUNT(*),
			COALESCE(MIN(price), 0),
			COALESCE(MAX(price), 0)
		FROM products
		WHERE is_active = TRUE`

	queryCatalogMetaCategoryCounts = `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.is_active = TRUE
		GROUP BY c.id, c.name
		ORDER BY c.name`
)
