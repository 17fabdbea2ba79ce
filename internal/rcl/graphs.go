package rcl

import "github.com/fcrepo-go/ldprepo/internal/tbx"

// AdminGraph returns the URI of a resource's server-managed metadata graph.
func AdminGraph(uid string) string { return "fcadmin:" + uid }

// StructGraph returns the URI of a resource's containment-structure graph.
func StructGraph(uid string) string { return "fcstruct:" + uid }

// MainGraph returns the URI of a resource's user-content graph.
func MainGraph(uid string) string { return "fcmain:" + uid }

// VersionedGraph returns the URI of an immutable version snapshot of the
// given destination family ("admin" or "main") for uid at verUID.
func VersionedGraph(destFamily, uid, verUID string) string {
	switch destFamily {
	case destAdmin:
		return AdminGraph(uid) + ":" + verUID
	default:
		return MainGraph(uid) + ":" + verUID
	}
}

// BackupMainGraph returns the URI used by delete_rsrc_data to back up a
// resource's main graph under an alternate uid before tombstoning.
func BackupMainGraph(backupUID string) string {
	return MainGraph(backupUID)
}

// graphsFor returns the admin/struct/main graph URIs for a resource uid.
func graphsFor(uid string) (admin, structG, main string) {
	return AdminGraph(uid), StructGraph(uid), MainGraph(uid)
}

// metaGraph and historicGraph are re-exported here so callers of rcl don't
// need to import tbx solely for these two well-known graph constants.
const (
	metaGraph     = tbx.MetaGraphURN
	historicGraph = tbx.HistoricGraphURN
)
