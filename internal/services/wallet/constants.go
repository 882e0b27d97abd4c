package wallet

// WalletCachePrefix namespaces wallet keys in cache metrics.
const WalletCachePrefix = "wallet:"
