package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/pkg/logger"
)

var _ inventory.ViewInvalidator = (*RedisViewInvalidator)(nil)

// Canal de pub/sub donde se anuncia la sucursal cuyo inventario cambió.
const invalidationChannel = "stock:invalidate"

// RedisViewInvalidator invalida las vistas cacheadas de inventario de una
// sucursal: borra las claves materializadas y publica la sucursal afectada
// para los observadores suscritos. Siempre best-effort: los fallos solo se
// registran, nunca se propagan al motor de ajustes.
type RedisViewInvalidator struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewRedisViewInvalidator construye el invalidador.
func NewRedisViewInvalidator(rdb *redis.Client, log *logger.Logger) *RedisViewInvalidator {
	return &RedisViewInvalidator{rdb: rdb, log: log}
}

// NewRedisClient crea el cliente Redis; devuelve nil si addr está vacío
// (despliegues sin caché: el invalidador simplemente no se inyecta).
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// InvalidateBranchStock borra las vistas cacheadas de la sucursal y publica
// la notificación de cambio.
func (n *RedisViewInvalidator) InvalidateBranchStock(ctx context.Context, branchID string) {
	keys := []string{
		"stock:summary:" + branchID,
		"stock:alerts:" + branchID,
	}
	if err := n.rdb.Del(ctx, keys...).Err(); err != nil {
		n.log.Warn().Err(err).Str("branch_id", branchID).Msg("invalidación de caché de inventario falló")
	}
	if err := n.rdb.Publish(ctx, invalidationChannel, branchID).Err(); err != nil {
		n.log.Warn().Err(err).Str("branch_id", branchID).Msg("publicación de invalidación falló")
	}
}
