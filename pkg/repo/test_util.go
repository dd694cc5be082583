package repo

import (
	"testing"
)

// MockRepo returns a repo backed by a temp dir and an in-memory kv store.
func MockRepo(t testing.TB) *Repo {
	rep := Default(t.TempDir())
	rep.Config.Storage.KvType = KVStorageTypeMemory
	rep.Config.Epoch.AutoAdvance = false
	rep.Config.Monitor.Enable = false
	return rep
}
