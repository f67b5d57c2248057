package appointment

import (
	"github.com/akaisui/car-repair-backend-sub000/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics,
// репозиторий работает и с *sql.DB, и с обёрткой *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
