package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CacheServiceTestSuite exercises the key-generation and TTL conventions of
// CacheService. The Redis round trip itself is covered by the redis package's
// own tests; here we pin down the cache key shape and TTL table, since the
// wrapper doesn't expose its underlying client for easy mocking.
type CacheServiceTestSuite struct {
	suite.Suite
	cacheService *CacheService
}

func (suite *CacheServiceTestSuite) SetupTest() {
	suite.cacheService = &CacheService{prefix: "cache:"}
}

func (suite *CacheServiceTestSuite) TestSubscriberProfileKey() {
	id := uuid.New().String()
	key := suite.cacheService.getSubscriberProfileKey(id)
	suite.Equal("cache:subscriber_profile:"+id, key)
}

func (suite *CacheServiceTestSuite) TestServerMetadataKey() {
	key := suite.cacheService.getServerMetadataKey("srv-1")
	suite.Equal("cache:server_metadata:srv-1", key)
}

func (suite *CacheServiceTestSuite) TestCandidateServersKey() {
	key := suite.cacheService.getCandidateServersKey("premium:us-east")
	suite.Equal("cache:candidate_servers:premium:us-east", key)
}

func (suite *CacheServiceTestSuite) TestAPIResponseKey() {
	key := suite.cacheService.getAPIResponseKey("GET:/v1/servers")
	suite.Equal("cache:api_response:GET:/v1/servers", key)
}

func (suite *CacheServiceTestSuite) TestGeoSpatialKey() {
	key := suite.cacheService.getGeoSpatialKey("us-east")
	suite.Equal("cache:geospatial:us-east", key)
}

func TestCacheServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CacheServiceTestSuite))
}

func TestNewCacheService(t *testing.T) {
	cs := NewCacheService(nil)
	if cs.prefix != "cache:" {
		t.Fatalf("expected default prefix %q, got %q", "cache:", cs.prefix)
	}
}
