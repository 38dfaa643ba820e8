package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// 속성 값의 저장 타입
const (
	valueTypeString = "string"
	valueTypeBool   = "bool"
	valueTypeInt    = "int"
	valueTypeFloat  = "float"
)

const createPropertiesTable = `
	CREATE TABLE IF NOT EXISTS component_properties (
		component_pid  VARCHAR(255) NOT NULL,
		property_key   VARCHAR(255) NOT NULL,
		property_value TEXT         NOT NULL,
		value_type     VARCHAR(16)  NOT NULL,
		modified_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (component_pid, property_key)
	)
`

const upsertProperty = `
	INSERT INTO component_properties (component_pid, property_key, property_value, value_type)
	VALUES (?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE property_value = VALUES(property_value), value_type = VALUES(value_type)
`

// MySQLConfigurationService는 component_properties 테이블에 속성을 저장하는 ConfigurationService 구현체입니다.
// 갱신 맵은 하나의 트랜잭션으로 반영됩니다.
type MySQLConfigurationService struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLConfigurationService는 새로운 MySQLConfigurationService를 생성합니다
func NewMySQLConfigurationService(db *sql.DB, logger *logrus.Logger) *MySQLConfigurationService {
	return &MySQLConfigurationService{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema는 속성 테이블이 없으면 생성합니다
func (r *MySQLConfigurationService) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPropertiesTable); err != nil {
		return errors.NewSystemError("속성 테이블 생성 실패", err)
	}
	return nil
}

// FetchConfiguration은 컴포넌트의 모든 속성을 조회합니다
func (r *MySQLConfigurationService) FetchConfiguration(ctx context.Context, componentID string) (entities.Properties, error) {
	query := `
		SELECT property_key, property_value, value_type
		FROM component_properties
		WHERE component_pid = ?
	`

	rows, err := r.db.QueryContext(ctx, query, componentID)
	if err != nil {
		return nil, errors.NewServiceUnavailableError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	props := entities.Properties{}
	for rows.Next() {
		var key, value, valueType string
		if err := rows.Scan(&key, &value, &valueType); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		decoded, err := decodeValue(value, valueType)
		if err != nil {
			// 해석할 수 없는 값은 문자열 그대로 전달하고 변환기에서 처리
			r.logger.WithFields(logrus.Fields{
				"property_key": key,
				"value_type":   valueType,
			}).WithError(err).Warn("속성 값 타입 변환 실패")
			decoded = value
		}
		props[key] = decoded
	}

	if err = rows.Err(); err != nil {
		return nil, errors.NewServiceUnavailableError("결과 처리 중 오류", err)
	}

	return props, nil
}

// ApplyConfiguration은 갱신 맵의 모든 키를 하나의 트랜잭션으로 upsert합니다
func (r *MySQLConfigurationService) ApplyConfiguration(ctx context.Context, componentID string, properties entities.Properties) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewServiceUnavailableError("트랜잭션 시작 실패", err)
	}

	for key, value := range properties {
		encoded, valueType := encodeValue(value)
		if _, err := tx.ExecContext(ctx, upsertProperty, componentID, key, encoded, valueType); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.WithError(rbErr).Error("트랜잭션 롤백 실패")
			}
			return errors.NewServiceUnavailableError(fmt.Sprintf("속성 기록 실패: %s", key), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewServiceUnavailableError("트랜잭션 커밋 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"component_id": componentID,
		"updated_keys": len(properties),
	}).Debug("속성 갱신 완료")

	return nil
}

// Ping은 데이터베이스 연결 상태를 확인합니다
func (r *MySQLConfigurationService) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.NewServiceUnavailableError("데이터베이스 연결 실패", err)
	}
	return nil
}

// encodeValue는 속성 값을 문자열과 타입 태그로 변환합니다
func encodeValue(value interface{}) (string, string) {
	switch v := value.(type) {
	case nil:
		return "", valueTypeString
	case string:
		return v, valueTypeString
	case bool:
		return strconv.FormatBool(v), valueTypeBool
	case int:
		return strconv.Itoa(v), valueTypeInt
	case int32:
		return strconv.FormatInt(int64(v), 10), valueTypeInt
	case int64:
		return strconv.FormatInt(v, 10), valueTypeInt
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), valueTypeFloat
	case []string:
		return strings.Join(v, ","), valueTypeString
	default:
		return fmt.Sprint(v), valueTypeString
	}
}

// decodeValue는 저장된 문자열을 타입 태그에 맞게 복원합니다
func decodeValue(value, valueType string) (interface{}, error) {
	switch valueType {
	case valueTypeBool:
		return strconv.ParseBool(value)
	case valueTypeInt:
		return strconv.Atoi(value)
	case valueTypeFloat:
		return strconv.ParseFloat(value, 64)
	default:
		return value, nil
	}
}
