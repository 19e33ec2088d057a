package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		corporate_name VARCHAR(100) NOT NULL,
		code INTEGER UNIQUE,
		contact_name VARCHAR(100),
		contact_phone VARCHAR(20),
		phone VARCHAR(20),
		address VARCHAR(200),
		number VARCHAR(20),
		district VARCHAR(100),
		city VARCHAR(100),
		state VARCHAR(2) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS technicians (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		cnpj VARCHAR(18) NOT NULL UNIQUE,
		cpf VARCHAR(14) NOT NULL,
		state_registration VARCHAR(50),
		email VARCHAR(100) NOT NULL UNIQUE,
		phone VARCHAR(20),
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'TECNICO',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		bank_details JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS service_orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id),
		technician_id UUID REFERENCES technicians(id),
		status VARCHAR(32) NOT NULL DEFAULT 'OPEN',
		is_cancelled BOOLEAN NOT NULL DEFAULT FALSE,
		opened_on DATE NOT NULL,
		scheduled_on DATE,
		completed_on DATE,
		description TEXT,
		warranty BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_orders_client_id ON service_orders (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_orders_technician_id ON service_orders (technician_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_orders_status ON service_orders (status);`,
	`CREATE TABLE IF NOT EXISTS visits (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES service_orders(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		visit_date DATE NOT NULL,
		departure_start VARCHAR(5),
		arrival_at_client VARCHAR(5),
		service_start VARCHAR(5),
		service_end VARCHAR(5),
		distance_km INTEGER NOT NULL DEFAULT 0,
		toll_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		return_freight_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		work_description TEXT,
		helper_name VARCHAR(100),
		helper_phone VARCHAR(20),
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		pending_note TEXT,
		odometer_start_ref VARCHAR(255),
		odometer_end_ref VARCHAR(255),
		client_signature_ref VARCHAR(255),
		toll_proof_refs JSONB NOT NULL DEFAULT '[]',
		freight_proof_refs JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uniq_visit_order_seq UNIQUE (order_id, seq)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_visits_order_id ON visits (order_id);`,
	`CREATE TABLE IF NOT EXISTS service_works (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		visit_id UUID NOT NULL REFERENCES visits(id) ON DELETE CASCADE,
		serial_number VARCHAR(100) NOT NULL,
		defect_tags JSONB NOT NULL DEFAULT '[]',
		defect_notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_works_visit_id ON service_works (visit_id);`,
	`CREATE TABLE IF NOT EXISTS materials (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		work_id UUID NOT NULL REFERENCES service_works(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		quantity INTEGER NOT NULL,
		unit_value NUMERIC(10,2) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_materials_work_id ON materials (work_id);`,
	`CREATE TABLE IF NOT EXISTS order_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES service_orders(id) ON DELETE CASCADE,
		old_status VARCHAR(32),
		new_status VARCHAR(32) NOT NULL,
		note TEXT,
		changed_by UUID REFERENCES technicians(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_order_status_log_order_id ON order_status_log (order_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_service_orders_updated_at') THEN
			CREATE TRIGGER trg_service_orders_updated_at
				BEFORE UPDATE ON service_orders
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_visits_updated_at') THEN
			CREATE TRIGGER trg_visits_updated_at
				BEFORE UPDATE ON visits
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
