package usecase

import "github.com/bwmarrin/snowflake"

var idNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	idNode = node
}

func newID() int64 {
	return idNode.Generate().Int64()
}
