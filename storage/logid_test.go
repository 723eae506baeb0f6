package storage

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParsePrefixedLogID(t *testing.T) {

	mklogid := func(uuidstr string) LogID {
		uuid := uuid.MustParse(uuidstr)
		return LogID(uuid[:])
	}
	type args struct {
		prefix      string
		storagePath string
	}
	tests := []struct {
		name string
		args args
		want LogID
	}{
		{
			name: "valid prefix and path, uuid mid string",
			args: args{
				prefix:      V1AccumulatorsPrefix,
				storagePath: "v1/accumulators/01947000-3456-780f-bfa9-29881e3bac88/checkpoints/0000000000000005.sth",
			},
			want: mklogid("01947000-3456-780f-bfa9-29881e3bac88"),
		},
		{
			name: "valid prefix and path, uuid end of string",
			args: args{
				prefix:      V1AccumulatorsPrefix,
				storagePath: "v1/accumulators/01947000-3456-780f-bfa9-29881e3bac88",
			},
			want: mklogid("01947000-3456-780f-bfa9-29881e3bac88"),
		},
		{
			name: "valid prefix and path, exact match",
			args: args{
				prefix:      "log/",
				storagePath: "log/01947000-3456-780f-bfa9-29881e3bac88",
			},
			want: mklogid("01947000-3456-780f-bfa9-29881e3bac88"),
		},
		{
			name: "missing prefix",
			args: args{
				prefix:      V1AccumulatorsPrefix,
				storagePath: "v2/accumulators/01947000-3456-780f-bfa9-29881e3bac88/snapshot.cbor",
			},
			want: nil,
		},
		{
			name: "short uuid",
			args: args{
				prefix:      V1AccumulatorsPrefix,
				storagePath: "v1/accumulators/01947000-3456-780f-bfa9/snapshot.cbor",
			},
			want: nil,
		},
		{
			name: "not a uuid",
			args: args{
				prefix:      V1AccumulatorsPrefix,
				storagePath: "v1/accumulators/zz947000-3456-780f-bfa9-29881e3bac88/snapshot.cbor",
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePrefixedLogID(tt.args.prefix, tt.args.storagePath); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePrefixedLogID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogIDUUID(t *testing.T) {
	id := uuid.MustParse("01947000-3456-780f-bfa9-29881e3bac88")
	logID := LogIDFromUUID(id)
	assert.Equal(t, id, logID.UUID())
	assert.Equal(t, id.String(), logID.String())
	assert.Equal(t, uuid.Nil, LogID([]byte{1, 2, 3}).UUID())
}
