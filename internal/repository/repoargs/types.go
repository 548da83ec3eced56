package repoargs

type RepositoryName string

const (
	BalanceRepoName      RepositoryName = "balance"
	ProfileRepoName      RepositoryName = "profile"
	CatalogRepoName      RepositoryName = "catalog"
	ShipmentRepoName     RepositoryName = "shipment"
	NotificationRepoName RepositoryName = "notification"
	OutboxRepoName       RepositoryName = "outbox"
)
