package migrate

import (
	"context"

	"storefront-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, pg_trgm
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateStorefrontDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных")

	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`).Error; err != nil {
			log.Error("Не удалось включить расширение pg_trgm", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
`).Error; err != nil {
			log.Error("Не удалось создать функцию set_updated_at", zap.Error(err))
			return err
		}
		for _, table := range []string{"users", "products", "product_variants", "carts", "cart_items", "orders"} {
			if err := db.WithContext(ctx).Exec(`
DROP TRIGGER IF EXISTS trg_` + table + `_updated ON ` + table + `;
CREATE TRIGGER trg_` + table + `_updated
BEFORE UPDATE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
				log.Error("Не удалось создать триггер updated_at", zap.String("table", table), zap.Error(err))
				return err
			}
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Запас не может уйти в минус — последний рубеж после условного декремента
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE product_variants
  DROP CONSTRAINT IF EXISTS chk_product_variants_stock_non_negative;
ALTER TABLE product_variants
  ADD CONSTRAINT chk_product_variants_stock_non_negative
  CHECK (stock >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для product_variants.stock", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS chk_cart_items_quantity_gte_one;
ALTER TABLE cart_items
  ADD CONSTRAINT chk_cart_items_quantity_gte_one
  CHECK (quantity >= 1);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для cart_items.quantity", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для order_items.quantity", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_prices_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_prices_non_negative
  CHECK (unit_price >= 0 AND total >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для цен в order_items", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_amounts_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_amounts_non_negative
  CHECK (subtotal >= 0 AND shipping_cost >= 0 AND total >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для сумм заказа", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('PENDING','CONFIRMED','SHIPPED','DELIVERED','CANCELLED'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")

		// уникальность email без учёта регистра
		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower
ON users (lower(email));
`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс по email", zap.Error(err))
			return err
		}

		// заказы пользователя по дате
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_user_created
ON orders (user_id, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_user_created", zap.Error(err))
			return err
		}

		// поиск по каталогу
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_products_name_trgm
ON products USING gin (lower(name) gin_trgm_ops);
`).Error; err != nil {
			log.Error("Не удалось создать trgm-индекс по products.name", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		fks := []struct {
			name, sql string
		}{
			{"fk_products_category", `
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_category,
  ADD CONSTRAINT fk_products_category
    FOREIGN KEY (category_id) REFERENCES categories(id);`},
			{"fk_product_images_product", `
ALTER TABLE product_images
  DROP CONSTRAINT IF EXISTS fk_product_images_product,
  ADD CONSTRAINT fk_product_images_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`},
			{"fk_product_variants_product", `
ALTER TABLE product_variants
  DROP CONSTRAINT IF EXISTS fk_product_variants_product,
  ADD CONSTRAINT fk_product_variants_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`},
			{"fk_carts_user", `
ALTER TABLE carts
  DROP CONSTRAINT IF EXISTS fk_carts_user,
  ADD CONSTRAINT fk_carts_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`},
			{"fk_cart_items_cart", `
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_cart,
  ADD CONSTRAINT fk_cart_items_cart
    FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE;`},
			{"fk_order_items_order", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
			{"fk_sessions_user", `
ALTER TABLE sessions
  DROP CONSTRAINT IF EXISTS fk_sessions_user,
  ADD CONSTRAINT fk_sessions_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`},
		}
		for _, fk := range fks {
			if err := db.WithContext(ctx).Exec(fk.sql).Error; err != nil {
				log.Error("Не удалось создать внешний ключ", zap.String("fk", fk.name), zap.Error(err))
				return err
			}
		}
	}

	log.Info("Миграция базы данных успешно завершена")
	return nil
}
