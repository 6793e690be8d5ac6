package w3cdid

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TopicID is a consensus topic in shard.realm.num form
type TopicID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

func ParseTopicID(s string) (TopicID, error) {
	p := strings.Split(s, ".")
	if len(p) != 3 {
		return TopicID{}, errors.Wrapf(ErrInvalidTopicID, "%q", s)
	}

	var n [3]uint64
	for i, v := range p {
		//only canonical decimals so String() rebuilds the same text
		if v == "" || v[0] < '0' || v[0] > '9' || (len(v) > 1 && v[0] == '0') {
			return TopicID{}, errors.Wrapf(ErrInvalidTopicID, "%q", s)
		}

		u, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return TopicID{}, errors.Wrapf(ErrInvalidTopicID, "%q: %s", s, err)
		}
		n[i] = u
	}

	return TopicID{Shard: n[0], Realm: n[1], Num: n[2]}, nil
}

func (t TopicID) String() string {
	return strconv.FormatUint(t.Shard, 10) + "." +
		strconv.FormatUint(t.Realm, 10) + "." +
		strconv.FormatUint(t.Num, 10)
}
