package repoargs

import "github.com/fsdevblog/escrow-ledger/pkg/kvstore"

// Пространства имен хранилища. Каждый компонент владеет своим.
const (
	NamespaceBalances      = "balances"
	NamespaceSeeds         = "seeds"
	NamespaceProfiles      = "profiles"
	NamespaceCatalog       = "catalog"
	NamespaceShipments     = "shipments"
	NamespaceNotifications = "notifications"
	NamespaceOutbox        = "outbox"
)

func BalanceKey(account string) kvstore.Key {
	return kvstore.NewKey(NamespaceBalances, account)
}

func SeedKey(account string) kvstore.Key {
	return kvstore.NewKey(NamespaceSeeds, account)
}

func ProfileKey(account string) kvstore.Key {
	return kvstore.NewKey(NamespaceProfiles, account)
}

func CatalogKey(id string) kvstore.Key {
	return kvstore.NewKey(NamespaceCatalog, id)
}

func ShipmentKey(id string) kvstore.Key {
	return kvstore.NewKey(NamespaceShipments, id)
}

// NotificationKey уведомления адресата лежат под общим префиксом, см. NotificationPrefix.
func NotificationKey(recipient, id string) kvstore.Key {
	return kvstore.NewKey(NamespaceNotifications, NotificationPrefix(recipient)+id)
}

func NotificationPrefix(recipient string) string {
	return recipient + "/"
}

func OutboxKey(id string) kvstore.Key {
	return kvstore.NewKey(NamespaceOutbox, id)
}
