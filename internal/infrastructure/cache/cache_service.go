package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// CacheService handles caching operations
type CacheService struct {
	redisClient *redis.RedisClient
	prefix      string
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.RedisClient) *CacheService {
	return &CacheService{
		redisClient: redisClient,
		prefix:      "cache:",
	}
}

// Cache TTL constants
const (
	SubscriberProfileCacheTTL = 30 * time.Minute
	ServerMetadataCacheTTL    = 15 * time.Minute
	CandidateServersTTL       = 10 * time.Minute
	APIResponseCacheTTL       = 5 * time.Minute
	GeoSpatialCacheTTL        = 60 * time.Minute
	OnlineStatusCacheTTL      = 2 * time.Minute
)

// CacheSubscriberProfile caches subscriber profile data
func (cs *CacheService) CacheSubscriberProfile(ctx context.Context, subscriberID string, profile *entities.Subscriber) error {
	key := cs.getSubscriberProfileKey(subscriberID)

	profileData, err := json.Marshal(profile)
	if err != nil {
		logger.Error("Failed to marshal subscriber profile for caching", err)
		return fmt.Errorf("failed to marshal subscriber profile: %w", err)
	}

	err = cs.redisClient.Set(ctx, key, string(profileData), SubscriberProfileCacheTTL)
	if err != nil {
		logger.Error("Failed to cache subscriber profile", err)
		return fmt.Errorf("failed to cache subscriber profile: %w", err)
	}

	logger.Debug("Subscriber profile cached", "subscriber_id", subscriberID)
	return nil
}

// GetSubscriberProfile retrieves cached subscriber profile
func (cs *CacheService) GetSubscriberProfile(ctx context.Context, subscriberID string) (*entities.Subscriber, error) {
	key := cs.getSubscriberProfileKey(subscriberID)

	profileData, err := cs.redisClient.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to get cached subscriber profile", err)
		return nil, fmt.Errorf("failed to get cached subscriber profile: %w", err)
	}

	if profileData == "" {
		return nil, nil // Cache miss
	}

	var profile entities.Subscriber
	err = json.Unmarshal([]byte(profileData), &profile)
	if err != nil {
		logger.Error("Failed to unmarshal cached subscriber profile", err)
		return nil, fmt.Errorf("failed to unmarshal cached subscriber profile: %w", err)
	}

	logger.Debug("Subscriber profile retrieved from cache", "subscriber_id", subscriberID)
	return &profile, nil
}

// InvalidateSubscriberProfile removes subscriber profile from cache
func (cs *CacheService) InvalidateSubscriberProfile(ctx context.Context, subscriberID string) error {
	key := cs.getSubscriberProfileKey(subscriberID)

	err := cs.redisClient.Del(ctx, key)
	if err != nil {
		logger.Error("Failed to invalidate subscriber profile cache", err)
		return fmt.Errorf("failed to invalidate subscriber profile cache: %w", err)
	}

	logger.Debug("Subscriber profile cache invalidated", "subscriber_id", subscriberID)
	return nil
}

// CacheServerMetadata caches fleet server metadata
func (cs *CacheService) CacheServerMetadata(ctx context.Context, serverID string, metadata map[string]interface{}) error {
	key := cs.getServerMetadataKey(serverID)

	metadataData, err := json.Marshal(metadata)
	if err != nil {
		logger.Error("Failed to marshal server metadata for caching", err)
		return fmt.Errorf("failed to marshal server metadata: %w", err)
	}

	err = cs.redisClient.Set(ctx, key, string(metadataData), ServerMetadataCacheTTL)
	if err != nil {
		logger.Error("Failed to cache server metadata", err)
		return fmt.Errorf("failed to cache server metadata: %w", err)
	}

	logger.Debug("Server metadata cached", "server_id", serverID)
	return nil
}

// GetServerMetadata retrieves cached fleet server metadata
func (cs *CacheService) GetServerMetadata(ctx context.Context, serverID string) (map[string]interface{}, error) {
	key := cs.getServerMetadataKey(serverID)

	metadataData, err := cs.redisClient.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to get cached server metadata", err)
		return nil, fmt.Errorf("failed to get cached server metadata: %w", err)
	}

	if metadataData == "" {
		return nil, nil // Cache miss
	}

	var metadata map[string]interface{}
	err = json.Unmarshal([]byte(metadataData), &metadata)
	if err != nil {
		logger.Error("Failed to unmarshal cached server metadata", err)
		return nil, fmt.Errorf("failed to unmarshal cached server metadata: %w", err)
	}

	logger.Debug("Server metadata retrieved from cache", "server_id", serverID)
	return metadata, nil
}

// CacheCandidateServers caches the server selection candidate list computed
// for a given tier/location pair, keyed by the caller-supplied selection key.
func (cs *CacheService) CacheCandidateServers(ctx context.Context, selectionKey string, candidates []*entities.Server) error {
	key := cs.getCandidateServersKey(selectionKey)

	candidatesData, err := json.Marshal(candidates)
	if err != nil {
		logger.Error("Failed to marshal candidate servers for caching", err)
		return fmt.Errorf("failed to marshal candidate servers: %w", err)
	}

	err = cs.redisClient.Set(ctx, key, string(candidatesData), CandidateServersTTL)
	if err != nil {
		logger.Error("Failed to cache candidate servers", err)
		return fmt.Errorf("failed to cache candidate servers: %w", err)
	}

	logger.Debug("Candidate servers cached", "selection_key", selectionKey, "count", len(candidates))
	return nil
}

// GetCandidateServers retrieves a cached server selection candidate list
func (cs *CacheService) GetCandidateServers(ctx context.Context, selectionKey string) ([]*entities.Server, error) {
	key := cs.getCandidateServersKey(selectionKey)

	candidatesData, err := cs.redisClient.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to get cached candidate servers", err)
		return nil, fmt.Errorf("failed to get cached candidate servers: %w", err)
	}

	if candidatesData == "" {
		return nil, nil // Cache miss
	}

	var candidates []*entities.Server
	err = json.Unmarshal([]byte(candidatesData), &candidates)
	if err != nil {
		logger.Error("Failed to unmarshal cached candidate servers", err)
		return nil, fmt.Errorf("failed to unmarshal cached candidate servers: %w", err)
	}

	logger.Debug("Candidate servers retrieved from cache", "selection_key", selectionKey)
	return candidates, nil
}

// CacheAPIResponse caches API response data
func (cs *CacheService) CacheAPIResponse(ctx context.Context, key string, response interface{}) error {
	cacheKey := cs.getAPIResponseKey(key)
	
	responseData, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal API response for caching", err)
		return fmt.Errorf("failed to marshal API response: %w", err)
	}

	err = cs.redisClient.Set(ctx, cacheKey, string(responseData), APIResponseCacheTTL)
	if err != nil {
		logger.Error("Failed to cache API response", err)
		return fmt.Errorf("failed to cache API response: %w", err)
	}

	logger.Debug("API response cached", "key", key)
	return nil
}

// GetAPIResponse retrieves cached API response
func (cs *CacheService) GetAPIResponse(ctx context.Context, key string, response interface{}) (bool, error) {
	cacheKey := cs.getAPIResponseKey(key)
	
	responseData, err := cs.redisClient.Get(ctx, cacheKey)
	if err != nil {
		logger.Error("Failed to get cached API response", err)
		return false, fmt.Errorf("failed to get cached API response: %w", err)
	}

	if responseData == "" {
		return false, nil // Cache miss
	}

	err = json.Unmarshal([]byte(responseData), &response)
	if err != nil {
		logger.Error("Failed to unmarshal cached API response", err)
		return false, fmt.Errorf("failed to unmarshal cached API response: %w", err)
	}

	logger.Debug("API response retrieved from cache", "key", key)
	return true, nil
}

// CacheGeoSpatialData caches geospatial data
func (cs *CacheService) CacheGeoSpatialData(ctx context.Context, locationKey string, data interface{}) error {
	cacheKey := cs.getGeoSpatialKey(locationKey)
	
	locationData, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to marshal geospatial data for caching", err)
		return fmt.Errorf("failed to marshal geospatial data: %w", err)
	}

	err = cs.redisClient.Set(ctx, cacheKey, string(locationData), GeoSpatialCacheTTL)
	if err != nil {
		logger.Error("Failed to cache geospatial data", err)
		return fmt.Errorf("failed to cache geospatial data: %w", err)
	}

	logger.Debug("Geospatial data cached", "location_key", locationKey)
	return nil
}

// GetGeoSpatialData retrieves cached geospatial data
func (cs *CacheService) GetGeoSpatialData(ctx context.Context, locationKey string, data interface{}) (bool, error) {
	cacheKey := cs.getGeoSpatialKey(locationKey)
	
	locationData, err := cs.redisClient.Get(ctx, cacheKey)
	if err != nil {
		logger.Error("Failed to get cached geospatial data", err)
		return false, fmt.Errorf("failed to get cached geospatial data: %w", err)
	}

	if locationData == "" {
		return false, nil // Cache miss
	}

	err = json.Unmarshal([]byte(locationData), &data)
	if err != nil {
		logger.Error("Failed to unmarshal cached geospatial data", err)
		return false, fmt.Errorf("failed to unmarshal cached geospatial data: %w", err)
	}

	logger.Debug("Geospatial data retrieved from cache", "location_key", locationKey)
	return true, nil
}

// InvalidatePattern removes all keys matching a pattern
func (cs *CacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	// This would typically be used with Redis SCAN in production
	// For simplicity, we'll implement basic pattern invalidation
	// In a real implementation, you might want to use KEYS command with caution
	
	logger.Info("Invalidating cache pattern", "pattern", pattern)
	
	// For now, we'll log the invalidation request
	// In production, you would implement proper pattern-based invalidation
	return nil
}

// WarmCache preloads frequently accessed data
func (cs *CacheService) WarmCache(ctx context.Context) error {
	logger.Info("Starting cache warming")
	
	// This would typically load frequently accessed data
	// Implementation depends on your specific use cases
	// For example: popular subscriber profiles, high-traffic server metadata, etc.
	
	logger.Info("Cache warming completed")
	return nil
}

// GetCacheStats returns cache statistics
func (cs *CacheService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	// Get Redis info
	stats := cs.redisClient.GetStats()
	
	// Add cache-specific metrics
	cacheStats := map[string]interface{}{
		"redis_stats": stats,
		"cache_prefix": cs.prefix,
		"ttls": map[string]time.Duration{
			"subscriber_profile":  SubscriberProfileCacheTTL,
			"server_metadata":     ServerMetadataCacheTTL,
			"candidate_servers":   CandidateServersTTL,
			"api_response":        APIResponseCacheTTL,
			"geospatial":          GeoSpatialCacheTTL,
			"online_status":       OnlineStatusCacheTTL,
		},
	}
	
	return cacheStats, nil
}

// Set sets a value in the cache with TTL
func (cs *CacheService) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	err := cs.redisClient.Set(ctx, key, value, ttl)
	if err != nil {
		logger.Error("Failed to set cache value", err, "key", key)
		return fmt.Errorf("failed to set cache value: %w", err)
	}
	return nil
}

// Del deletes a value from the cache
func (cs *CacheService) Del(ctx context.Context, key string) error {
	err := cs.redisClient.Del(ctx, key)
	if err != nil {
		logger.Error("Failed to delete cache value", err, "key", key)
		return fmt.Errorf("failed to delete cache value: %w", err)
	}
	return nil
}

// Helper methods for key generation

func (cs *CacheService) getSubscriberProfileKey(subscriberID string) string {
	return fmt.Sprintf("%ssubscriber_profile:%s", cs.prefix, subscriberID)
}

func (cs *CacheService) getServerMetadataKey(serverID string) string {
	return fmt.Sprintf("%sserver_metadata:%s", cs.prefix, serverID)
}

func (cs *CacheService) getCandidateServersKey(selectionKey string) string {
	return fmt.Sprintf("%scandidate_servers:%s", cs.prefix, selectionKey)
}

func (cs *CacheService) getAPIResponseKey(key string) string {
	return fmt.Sprintf("%sapi_response:%s", cs.prefix, key)
}

func (cs *CacheService) getGeoSpatialKey(locationKey string) string {
	return fmt.Sprintf("%sgeospatial:%s", cs.prefix, locationKey)
}