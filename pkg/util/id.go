package util

import (
	"math/rand"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// InitIDNode 初始化雪花 ID 节点（进程启动时调用一次）。
// nodeID 取值 0~1023，多实例部署时需保证互不相同。
func InitIDNode(nodeID int64) error {
	var err error
	nodeOnce.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// NewUID 生成用户 uuid（雪花 ID 的十进制字符串，最长 19 位，适配 char(20)）。
func NewUID() string {
	if node == nil {
		// 兜底：未显式初始化时用随机节点号，避免直接崩溃
		_ = InitIDNode(rand.Int63n(1024))
	}
	return node.Generate().String()
}
